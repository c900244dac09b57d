package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// PerpendicularDistance is the planar distance from p to the infinite line
// through start and end, measured on raw degrees. A degenerate line falls
// back to the distance from p to start.
func PerpendicularDistance(p, start, end orb.Point) float64 {
	x0, y0 := p[0], p[1]
	x1, y1 := start[0], start[1]
	x2, y2 := end[0], end[1]

	if x1 == x2 && y1 == y2 {
		return math.Hypot(x0-x1, y0-y1)
	}

	num := math.Abs((y2-y1)*x0 - (x2-x1)*y0 + x2*y1 - y2*x1)
	den := math.Hypot(y2-y1, x2-x1)
	return num / den
}

// DouglasPeucker reduces points to the subset that keeps every vertex
// farther than epsilon from the chord of its enclosing span. The first and
// last points are always kept. Sequences of two points or fewer are
// returned as is.
func DouglasPeucker(points orb.LineString, epsilon float64) orb.LineString {
	if len(points) <= 2 {
		return points
	}

	last := len(points) - 1
	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < last; i++ {
		// strict comparison keeps the lowest index on ties
		if d := PerpendicularDistance(points[i], points[0], points[last]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return orb.LineString{points[0], points[last]}
	}

	left := DouglasPeucker(points[:maxIdx+1], epsilon)
	right := DouglasPeucker(points[maxIdx:], epsilon)

	out := make(orb.LineString, 0, len(left)+len(right)-1)
	out = append(out, left[:len(left)-1]...)
	return append(out, right...)
}
