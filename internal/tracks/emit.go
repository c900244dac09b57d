package tracks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature property names.
const (
	PropSegmentID = "segment_id"
	PropCorridor  = "corridor"
	PropIsLoop    = "is_loop"
	PropLines     = "lines"
)

// SegmentID formats the sequential id of the i-th emitted segment.
func SegmentID(i int) string {
	return fmt.Sprintf("seg_%04d", i)
}

// Emit converts segments into a FeatureCollection, one LineString feature
// per segment in insertion order.
func Emit(segments *Segments) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, rec := range segments.Records() {
		corridor := Corridor(rec)

		f := geojson.NewFeature(orb.LineString{rec.Coords[0], rec.Coords[1]})
		f.Properties[PropSegmentID] = SegmentID(i)
		f.Properties[PropCorridor] = corridor
		f.Properties[PropIsLoop] = corridor == CorridorLoop
		f.Properties[PropLines] = rec.Lines()

		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes fc to path with two-space indentation. The file is
// written beside path and renamed into place, so a failed write never
// leaves a partial file.
func WriteGeoJSON(path string, fc *geojson.FeatureCollection) (err error) {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".segments-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// DecodeGeoJSON parses a FeatureCollection such as one written by
// WriteGeoJSON.
func DecodeGeoJSON(data []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode feature collection: %w", err)
	}
	return fc, nil
}
