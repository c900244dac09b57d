package geo

import "github.com/paulmach/orb"

// DowntownBox is the Loop area where shared elevated trackage is snapped
// to a coarser grid.
var DowntownBox = orb.Bound{
	Min: orb.Point{-87.64, 41.87},
	Max: orb.Point{-87.62, 41.89},
}

// ChicagoEnvelope is the sanity envelope emitted coordinates should fall in.
var ChicagoEnvelope = orb.Bound{
	Min: orb.Point{-88, 41},
	Max: orb.Point{-87, 43},
}

// InDowntown reports whether p lies inside DowntownBox, edges included.
func InDowntown(p orb.Point) bool {
	return DowntownBox.Contains(p)
}

// BoundOf returns the bounding box of every point in lines. ok is false
// when there are no points.
func BoundOf(lines []orb.LineString) (bound orb.Bound, ok bool) {
	for _, line := range lines {
		for _, p := range line {
			if !ok {
				bound = orb.Bound{Min: p, Max: p}
				ok = true
				continue
			}
			bound = bound.Extend(p)
		}
	}
	return bound, ok
}

// Within reports whether inner lies entirely inside outer.
func Within(inner, outer orb.Bound) bool {
	return outer.Contains(inner.Min) && outer.Contains(inner.Max)
}
