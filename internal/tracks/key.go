// Package tracks turns rail shapes into deduplicated, corridor-tagged track
// segments and writes them as GeoJSON.
package tracks

import (
	"strconv"

	"github.com/paulmach/orb"

	"tracks.ghoststops.org/internal/geo"
)

const (
	fineDecimals   = 5 // ~1.1 m
	coarseDecimals = 4 // ~11 m, downtown only
)

// SegmentKey identifies the segment between p and q independent of
// direction. Segments with both ends downtown are snapped to a coarser grid
// so the many lines sharing the Loop collapse onto the same keys.
func SegmentKey(p, q orb.Point) string {
	decimals := fineDecimals
	if geo.InDowntown(p) && geo.InDowntown(q) {
		decimals = coarseDecimals
	}

	a := roundPoint(p, decimals)
	b := roundPoint(q, decimals)
	if !pointLess(a, b) {
		a, b = b, a
	}
	return formatCoord(a[0]) + "," + formatCoord(a[1]) + "_" + formatCoord(b[0]) + "," + formatCoord(b[1])
}

func roundPoint(p orb.Point, decimals int) orb.Point {
	return orb.Point{roundTo(p[0], decimals), roundTo(p[1], decimals)}
}

// roundTo rounds the exact binary value of v. 41.900065 is stored just
// below the tie, so it rounds down to 41.90006.
func roundTo(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// pointLess orders points by longitude, then latitude.
func pointLess(a, b orb.Point) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
