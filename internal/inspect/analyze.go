// Package inspect summarises a track-segment GeoJSON file for debugging.
package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"

	"tracks.ghoststops.org/internal/tracks"
)

const unknownLine = "unknown"

// Analysis counts features by their descriptive properties.
type Analysis struct {
	Total int
	// ByLine counts the single "line" property of stitched exports.
	ByLine map[string]int
	// ByServedLine counts every member of the "lines" array.
	ByServedLine   map[string]int
	BySegmentCount map[int]int
	ByCorridor     map[string]int
	// Irregular counts line or segment_count values of an unexpected type.
	Irregular int
}

// Load decodes a FeatureCollection or a bare JSON array of Features.
func Load(data []byte) (*geojson.FeatureCollection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var features []*geojson.Feature
		if err := json.Unmarshal(trimmed, &features); err != nil {
			return nil, fmt.Errorf("failed to decode feature array: %w", err)
		}
		fc := geojson.NewFeatureCollection()
		for _, f := range features {
			fc.Append(f)
		}
		return fc, nil
	}

	return tracks.DecodeGeoJSON(trimmed)
}

// LoadFile reads and decodes path.
func LoadFile(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Load(data)
}

// Analyze tallies the features of fc.
func Analyze(fc *geojson.FeatureCollection) Analysis {
	a := Analysis{
		Total:          len(fc.Features),
		ByLine:         map[string]int{},
		ByServedLine:   map[string]int{},
		BySegmentCount: map[int]int{},
		ByCorridor:     map[string]int{},
	}

	for _, f := range fc.Features {
		props := f.Properties
		if props == nil {
			props = geojson.Properties{}
		}

		line, ok := lineName(props["line"])
		if !ok {
			a.Irregular++
		}
		a.ByLine[line]++

		count, ok := segmentCount(props["segment_count"])
		if !ok {
			a.Irregular++
		}
		a.BySegmentCount[count]++

		if corridor, ok := props["corridor"].(string); ok {
			a.ByCorridor[corridor]++
		}
		if lines, ok := props["lines"].([]interface{}); ok {
			for _, l := range lines {
				if name, ok := l.(string); ok {
					a.ByServedLine[name]++
				}
			}
		}
	}
	return a
}

// lineName keys a feature by its line. Non-string values are printed as-is
// and reported as irregular.
func lineName(v interface{}) (string, bool) {
	switch l := v.(type) {
	case nil:
		return unknownLine, true
	case string:
		return l, true
	default:
		return fmt.Sprint(l), false
	}
}

// segmentCount reads segment_count, defaulting to 1. Values that are not
// whole numbers fall back to 1 and are reported as irregular.
func segmentCount(v interface{}) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 1, true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	case int:
		return n, true
	}
	return 1, false
}

// Print writes the human-readable report.
func (a Analysis) Print(w io.Writer) {
	fmt.Fprintf(w, "Total features: %d\n", a.Total)

	fmt.Fprintln(w, "\nFeatures by line:")
	printCounts(w, a.ByLine)

	if len(a.ByServedLine) > 0 {
		fmt.Fprintln(w, "\nFeatures by served line:")
		printCounts(w, a.ByServedLine)
	}

	fmt.Fprintln(w, "\nStitching statistics:")
	counts := make([]int, 0, len(a.BySegmentCount))
	for n := range a.BySegmentCount {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	for _, n := range counts {
		if n == 1 {
			fmt.Fprintf(w, "  Single segments: %d\n", a.BySegmentCount[n])
		} else {
			fmt.Fprintf(w, "  Stitched from %d segments: %d\n", n, a.BySegmentCount[n])
		}
	}

	if len(a.ByCorridor) > 0 {
		fmt.Fprintln(w, "\nFeatures by corridor:")
		printCounts(w, a.ByCorridor)
	}

	if a.Irregular > 0 {
		fmt.Fprintf(w, "\nIrregular property values: %d\n", a.Irregular)
	}
}

func printCounts(w io.Writer, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %d\n", k, counts[k])
	}
}
