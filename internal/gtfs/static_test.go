package gtfs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracks.ghoststops.org/internal/testutil"
)

func TestOpenFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("local file is used in place and never removed", func(t *testing.T) {
		path := testutil.WriteFeed(t, testutil.TurnFeed())

		feed, err := OpenFeed(ctx, Config{Source: path})
		require.NoError(t, err)
		assert.Equal(t, path, feed.Path)

		require.NoError(t, feed.Close())
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("missing local file", func(t *testing.T) {
		_, err := OpenFeed(ctx, Config{Source: "missing.zip"})
		assert.ErrorContains(t, err, "error reading local GTFS file")
	})

	t.Run("downloaded feed is removed on close", func(t *testing.T) {
		body, err := os.ReadFile(testutil.WriteFeed(t, testutil.TurnFeed()))
		require.NoError(t, err)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(body)
		}))
		defer server.Close()

		feed, err := OpenFeed(ctx, Config{Source: server.URL + "/google_transit.zip"})
		require.NoError(t, err)

		downloaded, err := os.ReadFile(feed.Path)
		require.NoError(t, err)
		assert.Equal(t, body, downloaded)

		require.NoError(t, feed.Close())
		_, err = os.Stat(feed.Path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("non-200 download fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := OpenFeed(ctx, Config{Source: server.URL})
		assert.ErrorContains(t, err, "404")
	})
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://www.transitchicago.com/downloads/sch_data/google_transit.zip"))
	assert.True(t, IsRemote("http://localhost/feed.zip"))
	assert.False(t, IsRemote("scripts/cta_gtfs.zip"))
}
