package tracks

import (
	"log/slog"

	"tracks.ghoststops.org/internal/geo"
	"tracks.ghoststops.org/internal/gtfs"
	"tracks.ghoststops.org/internal/logging"
)

// BuildOptions control simplification and the long-segment diagnostic.
type BuildOptions struct {
	Epsilon           float64
	LongSegmentMeters float64
}

// BuildStats counts what BuildSegments saw.
type BuildStats struct {
	Shapes       int
	Segments     int
	LongSegments int
}

// BuildSegments simplifies every shape and accumulates its consecutive
// point pairs into unique segments tagged with the shape's line. Routes are
// visited in route-table order and shapes in the order given, so the result
// is deterministic. Shapes with fewer than two points are skipped.
func BuildSegments(shapes gtfs.ShapesByRoute, opts BuildOptions, logger *slog.Logger) (*Segments, BuildStats) {
	segments := NewSegments()
	var stats BuildStats

	for _, routeID := range shapes.Routes() {
		line, ok := gtfs.LineForRoute(routeID)
		if !ok {
			line = routeID
		}

		for _, shape := range shapes[routeID] {
			if len(shape.Coords) < 2 {
				continue
			}
			stats.Shapes++

			simplified := geo.DouglasPeucker(shape.Coords, opts.Epsilon)
			for i := 0; i < len(simplified)-1; i++ {
				p, q := simplified[i], simplified[i+1]

				if dist := geo.Haversine(p, q); dist > opts.LongSegmentMeters {
					stats.LongSegments++
					logging.LogWarning(logger, "long segment",
						slog.Int("meters", int(dist)),
						slog.String("line", line),
						slog.String("shape_id", shape.ID))
				}

				segments.Add(p, q, line)
				stats.Segments++
			}
		}
	}

	logging.LogOperation(logger, "segments_built",
		slog.Int("shapes", stats.Shapes),
		slog.Int("segments", stats.Segments),
		slog.Int("unique_segments", segments.Len()),
		slog.Int("long_segments", stats.LongSegments))

	return segments, stats
}
