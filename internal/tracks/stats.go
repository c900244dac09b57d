package tracks

import (
	"log/slog"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"tracks.ghoststops.org/internal/geo"
	"tracks.ghoststops.org/internal/logging"
)

// LengthBucket counts emitted segments whose length falls in [Min, Max).
type LengthBucket struct {
	Label string
	Min   float64
	Max   float64
	Count int
}

// LengthDistribution buckets two-point features by haversine length.
func LengthDistribution(fc *geojson.FeatureCollection) []LengthBucket {
	buckets := []LengthBucket{
		{Label: "0-50m", Min: 0, Max: 50},
		{Label: "50-200m", Min: 50, Max: 200},
		{Label: "200-500m", Min: 200, Max: 500},
		{Label: "500-1000m", Min: 500, Max: 1000},
		{Label: "1000m+", Min: 1000, Max: -1},
	}

	for _, f := range fc.Features {
		line, ok := f.Geometry.(orb.LineString)
		if !ok || len(line) != 2 {
			continue
		}
		dist := geo.Haversine(line[0], line[1])
		for i := range buckets {
			if dist >= buckets[i].Min && (buckets[i].Max < 0 || dist < buckets[i].Max) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// SharingCount is the number of segments traversed by exactly Lines lines.
type SharingCount struct {
	Lines    int
	Segments int
}

// SharingStats groups segments by how many lines share them, ascending.
func SharingStats(segments *Segments) []SharingCount {
	counts := map[int]int{}
	for _, rec := range segments.Records() {
		counts[rec.LineCount()]++
	}

	out := make([]SharingCount, 0, len(counts))
	for lines, n := range counts {
		out = append(out, SharingCount{Lines: lines, Segments: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lines < out[j].Lines })
	return out
}

// FeatureBound returns the bounding box of every emitted coordinate.
func FeatureBound(fc *geojson.FeatureCollection) (orb.Bound, bool) {
	lines := make([]orb.LineString, 0, len(fc.Features))
	for _, f := range fc.Features {
		if line, ok := f.Geometry.(orb.LineString); ok {
			lines = append(lines, line)
		}
	}
	return geo.BoundOf(lines)
}

// CheckBound logs a warning when the output falls outside the Chicago
// envelope. It never fails the run.
func CheckBound(bound orb.Bound, logger *slog.Logger) bool {
	attrs := []slog.Attr{
		slog.Float64("min_lon", bound.Min.Lon()),
		slog.Float64("min_lat", bound.Min.Lat()),
		slog.Float64("max_lon", bound.Max.Lon()),
		slog.Float64("max_lat", bound.Max.Lat()),
	}
	if !geo.Within(bound, geo.ChicagoEnvelope) {
		logging.LogWarning(logger, "bounding box seems outside Chicago area", attrs...)
		return false
	}
	logging.LogOperation(logger, "bounding box within Chicago area", attrs...)
	return true
}

// sampleFeatures returns up to n features, optionally only shared ones.
func sampleFeatures(fc *geojson.FeatureCollection, n int, sharedOnly bool) []*geojson.Feature {
	var out []*geojson.Feature
	for _, f := range fc.Features {
		if len(out) == n {
			break
		}
		if sharedOnly {
			lines, _ := f.Properties[PropLines].([]string)
			if len(lines) < 2 {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

func logSamples(logger *slog.Logger, msg string, features []*geojson.Feature) {
	for _, f := range features {
		logger.Info(msg,
			slog.String(PropSegmentID, f.Properties.MustString(PropSegmentID, "")),
			slog.String(PropCorridor, f.Properties.MustString(PropCorridor, "")),
			slog.Any(PropLines, f.Properties[PropLines]))
	}
}
