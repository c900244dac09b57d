package gtfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/jamespfennell/gtfs"

	"tracks.ghoststops.org/internal/logging"
)

// Feed is a static GTFS archive available on local disk. A feed that was
// downloaded lives in a temp file that Close removes.
type Feed struct {
	Path       string
	downloaded bool
}

// Close removes the archive if it was downloaded. Local files are never
// touched.
func (f *Feed) Close() error {
	if f == nil || !f.downloaded {
		return nil
	}
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing downloaded feed %s: %w", f.Path, err)
	}
	return nil
}

// OpenFeed makes config.Source available as a local zip, downloading it
// when it is a URL.
func OpenFeed(ctx context.Context, config Config) (*Feed, error) {
	if !config.isRemote() {
		if _, err := os.Stat(config.Source); err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return &Feed{Path: config.Source}, nil
	}

	path, err := downloadFeed(ctx, config.Source)
	if err != nil {
		return nil, err
	}
	return &Feed{Path: path, downloaded: true}, nil
}

func downloadFeed(ctx context.Context, url string) (string, error) {
	logger := logging.FromContext(ctx)
	logger.Info("downloading GTFS feed", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error building GTFS request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "close_feed_response")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error downloading GTFS data: unexpected status %s", resp.Status)
	}

	out, err := os.CreateTemp("", "cta_gtfs-*.zip")
	if err != nil {
		return "", fmt.Errorf("error creating feed file: %w", err)
	}

	n, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(out.Name())
		return "", fmt.Errorf("error writing GTFS data: %w", errors.Join(copyErr, closeErr))
	}

	logging.LogOperation(logger, "gtfs_feed_downloaded",
		slog.String("path", out.Name()),
		slog.Int64("bytes", n))
	return out.Name(), nil
}

// LoadStatic parses the complete feed at config.Source.
func LoadStatic(ctx context.Context, config Config) (static *gtfs.Static, err error) {
	feed, err := OpenFeed(ctx, config)
	if err != nil {
		return nil, err
	}
	defer logging.HandleDeferredError(&err, feed.Close, logging.FromContext(ctx), "remove_feed")

	b, err := os.ReadFile(feed.Path)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}

	static, err = gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}
	return static, nil
}
