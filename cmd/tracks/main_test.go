package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracks.ghoststops.org/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSegmentsAndInspect(t *testing.T) {
	feed := testutil.WriteFeed(t, testutil.TurnFeed())
	output := filepath.Join(t.TempDir(), "data", "segments.geojson")

	code, stdout, stderr := runCLI(t, "segments", "--source", feed, "--output", output, "--log-format", "json")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Wrote 2 segments to "+output)
	assert.Contains(t, stderr, `"msg":"segments_written"`)
	assert.FileExists(t, output)

	code, stdout, _ = runCLI(t, "inspect", output)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Total features: 2")
	assert.Contains(t, stdout, "  Red: 2")
}

func TestSegmentsNoShapes(t *testing.T) {
	feed := testutil.WriteFeed(t, testutil.ShapeTables(
		"route_id,route_short_name,route_type\n22,22,3\n",
		"route_id,service_id,trip_id,shape_id\n22,W,B1,900\n",
		"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n900,41.95,-87.80,1\n",
	))
	output := filepath.Join(t.TempDir(), "segments.geojson")

	code, _, stderr := runCLI(t, "segments", "--source", feed, "--output", output)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no shapes found")
	assert.NoFileExists(t, output)
}

func TestFeedInfo(t *testing.T) {
	feed := testutil.WriteFeed(t, testutil.FullFeed())

	code, stdout, stderr := runCLI(t, "feed-info", feed)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Source: "+feed)
}

func TestSyncRidership(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`[{"station_id":"x","stationname":"x","date":"2024-01-02T00:00:00.000","daytype":"W","rides":"5"}]`))
	}))
	defer server.Close()

	code, stdout, stderr := runCLI(t, "sync-ridership",
		"--env", "test",
		"--database-url", ":memory:",
		"--socrata-url", server.URL,
		"--since", "2024-01-01",
		"--rate", "0")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, 5, requests)
	assert.Contains(t, stdout, "Synced ridership since 2024-01-01")
	assert.Contains(t, stdout, "O'Hare Airport: 1 records, latest: 2024-01-02 00:00:00")
	assert.Contains(t, stdout, "Total records inserted: 5")
}

func TestCommandErrors(t *testing.T) {
	t.Run("bad since date", func(t *testing.T) {
		code, _, stderr := runCLI(t, "sync-ridership", "--env", "test", "--database-url", ":memory:", "--since", "01/02/2024")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "invalid date format")
	})

	t.Run("missing config file", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.yml"), "inspect", "x.json")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Error: error reading config")
	})

	t.Run("invalid log level", func(t *testing.T) {
		code, _, stderr := runCLI(t, "--log-level", "loud", "inspect", "x.json")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "invalid configuration")
	})

	t.Run("config file values", func(t *testing.T) {
		dir := t.TempDir()
		output := filepath.Join(dir, "from-config.geojson")
		config := filepath.Join(dir, "tracks.yml")
		feed := testutil.WriteFeed(t, testutil.TurnFeed())
		require.NoError(t, os.WriteFile(config, []byte("segments:\n  feedSource: "+feed+"\n  outputPath: "+output+"\n"), 0o644))

		code, _, stderr := runCLI(t, "--config", config, "segments")
		require.Equal(t, 0, code, stderr)
		assert.FileExists(t, output)
	})

	t.Run("non-finite epsilon", func(t *testing.T) {
		code, _, stderr := runCLI(t, "segments", "--source", "unused.zip", "--epsilon", "NaN")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "invalid segments configuration")
	})

	t.Run("unknown command", func(t *testing.T) {
		code, _, _ := runCLI(t, "frobnicate")
		assert.Equal(t, 1, code)
	})
}
