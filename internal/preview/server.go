// Package preview serves a generated segment file and small JSON views of
// it for local map debugging.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/paulmach/orb/geojson"

	"tracks.ghoststops.org/internal/logging"
	"tracks.ghoststops.org/internal/models"
	"tracks.ghoststops.org/internal/tracks"
)

// Server holds the loaded segment file and the views derived from it.
type Server struct {
	Logger *slog.Logger

	path      string
	raw       []byte
	segments  map[string]*geojson.Feature
	corridors []models.CorridorSummary
}

// NewServer loads the FeatureCollection at path.
func NewServer(path string, logger *slog.Logger) (*Server, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fc, err := tracks.DecodeGeoJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	s := &Server{
		Logger:   logger,
		path:     path,
		raw:      raw,
		segments: make(map[string]*geojson.Feature, len(fc.Features)),
	}
	unnamed := 0
	for _, f := range fc.Features {
		if id := stringProp(f, tracks.PropSegmentID, ""); id != "" {
			s.segments[id] = f
		} else {
			unnamed++
		}
	}
	if unnamed > 0 {
		logger.Warn("features without a segment_id are not addressable", slog.Int("count", unnamed))
	}
	s.corridors = summarizeCorridors(fc)

	logging.LogOperation(logger, "segments_loaded",
		slog.String("path", path),
		slog.Int("segments", len(s.segments)),
		slog.Int("corridors", len(s.corridors)))
	return s, nil
}

func summarizeCorridors(fc *geojson.FeatureCollection) []models.CorridorSummary {
	byName := map[string]*models.CorridorSummary{}
	lineSets := map[string]map[string]struct{}{}

	for _, f := range fc.Features {
		name := stringProp(f, tracks.PropCorridor, tracks.CorridorUnknown)
		summary, ok := byName[name]
		if !ok {
			summary = &models.CorridorSummary{Corridor: name, IsLoop: name == tracks.CorridorLoop}
			byName[name] = summary
			lineSets[name] = map[string]struct{}{}
		}
		summary.Segments++
		for _, line := range featureLines(f) {
			lineSets[name][line] = struct{}{}
		}
	}

	out := make([]models.CorridorSummary, 0, len(byName))
	for name, summary := range byName {
		summary.Lines = make([]string, 0, len(lineSets[name]))
		for line := range lineSets[name] {
			summary.Lines = append(summary.Lines, line)
		}
		sort.Strings(summary.Lines)
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Corridor < out[j].Corridor })
	return out
}

// stringProp returns the string property key, or def when it is absent or
// not a string.
func stringProp(f *geojson.Feature, key, def string) string {
	if s, ok := f.Properties[key].(string); ok {
		return s
	}
	return def
}

// featureLines reads the lines property whether it was built in memory or
// decoded from JSON.
func featureLines(f *geojson.Feature) []string {
	switch v := f.Properties[tracks.PropLines].(type) {
	case []string:
		return v
	case []interface{}:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				lines = append(lines, s)
			}
		}
		return lines
	}
	return nil
}

// ListenAndServe serves on port until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(s.Logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("starting server", "addr", srv.Addr, "segments", s.path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
