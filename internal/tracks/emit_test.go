package tracks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSegments() *Segments {
	s := NewSegments()
	s.Add(orb.Point{-87.6300, 41.8800}, orb.Point{-87.6310, 41.8820}, "Brown")
	s.Add(orb.Point{-87.6300, 41.8800}, orb.Point{-87.6310, 41.8820}, "Orange")
	s.Add(orb.Point{-87.6300, 41.8800}, orb.Point{-87.6310, 41.8820}, "Pink")
	s.Add(orb.Point{-87.7000, 41.9000}, orb.Point{-87.6900, 41.9000}, "Red")
	return s
}

func TestSegmentID(t *testing.T) {
	assert.Equal(t, "seg_0000", SegmentID(0))
	assert.Equal(t, "seg_0042", SegmentID(42))
	assert.Equal(t, "seg_12345", SegmentID(12345))
}

func TestEmit(t *testing.T) {
	fc := Emit(sampleSegments())
	require.Len(t, fc.Features, 2)

	loop := fc.Features[0]
	assert.Equal(t, orb.LineString{{-87.6310, 41.8820}, {-87.6300, 41.8800}}, loop.Geometry)
	assert.Equal(t, "seg_0000", loop.Properties[PropSegmentID])
	assert.Equal(t, CorridorLoop, loop.Properties[PropCorridor])
	assert.Equal(t, true, loop.Properties[PropIsLoop])
	assert.Equal(t, []string{"Brown", "Orange", "Pink"}, loop.Properties[PropLines])

	red := fc.Features[1]
	assert.Equal(t, "seg_0001", red.Properties[PropSegmentID])
	assert.Equal(t, "Red", red.Properties[PropCorridor])
	assert.Equal(t, false, red.Properties[PropIsLoop])
}

func TestWriteGeoJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "cta", "segments.geojson")
		require.NoError(t, WriteGeoJSON(path, Emit(sampleSegments())))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "\n  \"")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

		fc := readGeoJSON(t, path)
		require.Len(t, fc.Features, 2)
		assert.Equal(t, "seg_0000", fc.Features[0].Properties.MustString(PropSegmentID))
		assert.Equal(t, []interface{}{"Brown", "Orange", "Pink"}, fc.Features[0].Properties[PropLines])
		assert.Equal(t, true, fc.Features[0].Properties.MustBool(PropIsLoop))
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "segments.geojson")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

		require.NoError(t, WriteGeoJSON(path, geojson.NewFeatureCollection()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)

		fc := readGeoJSON(t, path)
		assert.Empty(t, fc.Features)
	})

	t.Run("decode reports parse errors", func(t *testing.T) {
		_, err := DecodeGeoJSON([]byte("{"))
		assert.ErrorContains(t, err, "failed to decode feature collection")
	})
}

func readGeoJSON(t *testing.T, path string) *geojson.FeatureCollection {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := DecodeGeoJSON(raw)
	require.NoError(t, err)
	return fc
}
