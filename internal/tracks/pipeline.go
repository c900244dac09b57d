package tracks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb"

	"tracks.ghoststops.org/internal/gtfs"
	"tracks.ghoststops.org/internal/logging"
)

// Options configure one pipeline run.
type Options struct {
	// Source is the feed URL or local zip path.
	Source     string
	OutputPath string
	Build      BuildOptions
}

// Result summarises a completed run.
type Result struct {
	OutputPath string
	Features   int
	Bound      orb.Bound
	InChicago  bool
	Stats      BuildStats
	Sharing    []SharingCount
	Lengths    []LengthBucket
}

// Run downloads or opens the feed, builds the segment map and writes it to
// opts.OutputPath. A downloaded feed is removed on every return path.
// gtfs.ErrNoShapes stops the run before anything is written.
func Run(ctx context.Context, opts Options) (result Result, err error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	feed, err := gtfs.OpenFeed(ctx, gtfs.Config{Source: opts.Source})
	if err != nil {
		return Result{}, err
	}
	defer logging.HandleDeferredError(&err, feed.Close, logger, "remove_feed")

	shapes, err := gtfs.ExtractRailShapes(ctx, feed.Path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract rail shapes: %w", err)
	}

	segments, stats := BuildSegments(shapes, opts.Build, logger)
	result.Stats = stats

	result.Sharing = SharingStats(segments)
	for _, s := range result.Sharing {
		logger.Info("segment sharing", slog.Int("lines", s.Lines), slog.Int("segments", s.Segments))
	}

	fc := Emit(segments)
	result.Features = len(fc.Features)

	result.Lengths = LengthDistribution(fc)
	for _, b := range result.Lengths {
		logger.Info("segment length distribution", slog.String("bucket", b.Label), slog.Int("segments", b.Count))
	}

	if bound, ok := FeatureBound(fc); ok {
		result.Bound = bound
		result.InChicago = CheckBound(bound, logger)
	}

	if err := WriteGeoJSON(opts.OutputPath, fc); err != nil {
		return Result{}, err
	}
	result.OutputPath = opts.OutputPath

	logSamples(logger, "sample segment", sampleFeatures(fc, 5, false))
	logSamples(logger, "sample shared segment", sampleFeatures(fc, 5, true))

	logging.LogOperation(logger, "segments_written",
		slog.String("path", opts.OutputPath),
		slog.Int("features", result.Features),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}
