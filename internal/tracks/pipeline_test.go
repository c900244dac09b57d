package tracks

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracks.ghoststops.org/internal/gtfs"
	"tracks.ghoststops.org/internal/logging"
	"tracks.ghoststops.org/internal/testutil"
)

func pipelineOptions(source, output string) Options {
	return Options{
		Source:     source,
		OutputPath: output,
		Build:      BuildOptions{Epsilon: 0.00003, LongSegmentMeters: 1000},
	}
}

func TestRun(t *testing.T) {
	t.Run("single shape with a turn", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.WithLogger(context.Background(), testLogger(&buf))

		feed := testutil.WriteFeed(t, testutil.TurnFeed())
		output := filepath.Join(t.TempDir(), "public", "segments.geojson")

		result, err := Run(ctx, pipelineOptions(feed, output))
		require.NoError(t, err)

		assert.Equal(t, output, result.OutputPath)
		assert.Equal(t, 2, result.Features)
		assert.Equal(t, 1, result.Stats.Shapes)
		assert.Equal(t, 1, result.Stats.LongSegments)
		assert.True(t, result.InChicago)
		assert.Equal(t, []SharingCount{{Lines: 1, Segments: 2}}, result.Sharing)

		fc := readGeoJSON(t, output)
		require.Len(t, fc.Features, 2)

		assert.Equal(t, orb.LineString{{-87.70, 41.90}, {-87.69, 41.90}}, fc.Features[0].Geometry)
		assert.Equal(t, orb.LineString{{-87.69, 41.90}, {-87.69, 41.91}}, fc.Features[1].Geometry)
		for i, f := range fc.Features {
			assert.Equal(t, SegmentID(i), f.Properties.MustString(PropSegmentID))
			assert.Equal(t, "Red", f.Properties.MustString(PropCorridor))
			assert.False(t, f.Properties.MustBool(PropIsLoop))
			assert.Equal(t, []interface{}{"Red"}, f.Properties[PropLines])
		}

		assert.Contains(t, buf.String(), "segments_written")
	})

	t.Run("deterministic output", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), testLogger(&bytes.Buffer{}))
		feed := testutil.WriteFeed(t, testutil.TurnFeed())
		dir := t.TempDir()

		first := filepath.Join(dir, "a.geojson")
		second := filepath.Join(dir, "b.geojson")
		_, err := Run(ctx, pipelineOptions(feed, first))
		require.NoError(t, err)
		_, err = Run(ctx, pipelineOptions(feed, second))
		require.NoError(t, err)

		a, err := os.ReadFile(first)
		require.NoError(t, err)
		b, err := os.ReadFile(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))
	})

	t.Run("no rail shapes writes nothing", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), testLogger(&bytes.Buffer{}))
		feed := testutil.WriteFeed(t, testutil.ShapeTables(
			"route_id,route_short_name,route_type\n22,22,3\n",
			"route_id,service_id,trip_id,shape_id\n22,W,B1,900\n",
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n900,41.95,-87.80,1\n900,41.96,-87.80,2\n",
		))
		output := filepath.Join(t.TempDir(), "segments.geojson")

		_, err := Run(ctx, pipelineOptions(feed, output))
		require.ErrorIs(t, err, gtfs.ErrNoShapes)
		assert.NoFileExists(t, output)
	})

	t.Run("downloaded feed is removed on failure", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)

		body, err := os.ReadFile(testutil.WriteFeed(t, testutil.ShapeTables(
			"route_id,route_short_name,route_type\n",
			"route_id,service_id,trip_id,shape_id\n",
			"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n",
		)))
		require.NoError(t, err)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		}))
		defer server.Close()

		ctx := logging.WithLogger(context.Background(), testLogger(&bytes.Buffer{}))
		output := filepath.Join(t.TempDir(), "segments.geojson")

		_, err = Run(ctx, pipelineOptions(server.URL+"/google_transit.zip", output))
		require.ErrorIs(t, err, gtfs.ErrNoShapes)

		entries, err := os.ReadDir(tmp)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("download failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		ctx := logging.WithLogger(context.Background(), testLogger(&bytes.Buffer{}))
		output := filepath.Join(t.TempDir(), "segments.geojson")

		_, err := Run(ctx, pipelineOptions(server.URL, output))
		assert.Error(t, err)
		assert.NoFileExists(t, output)
	})
}
