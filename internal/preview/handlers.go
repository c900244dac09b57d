package preview

import (
	"math"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"tracks.ghoststops.org/internal/geo"
	"tracks.ghoststops.org/internal/models"
	"tracks.ghoststops.org/internal/tracks"
	"tracks.ghoststops.org/internal/utils"
)

func (s *Server) segmentsFileHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	if _, err := w.Write(s.raw); err != nil {
		s.Logger.Error("failed to write segments file", "error", err)
	}
}

func (s *Server) corridorsHandler(w http.ResponseWriter, r *http.Request) {
	s.sendResponse(w, r, models.NewListResponse(s.corridors))
}

func (s *Server) segmentHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateSegmentID(id); err != nil {
		s.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	f, ok := s.segments[id]
	if !ok {
		s.sendNotFound(w, r)
		return
	}

	line, ok := f.Geometry.(orb.LineString)
	if !ok || len(line) < 2 {
		s.sendNotFound(w, r)
		return
	}

	s.sendResponse(w, r, models.NewEntryResponse(segmentEntry(id, f, line)))
}

func segmentEntry(id string, f *geojson.Feature, line orb.LineString) models.SegmentEntry {
	var length float64
	coords := make([][]float64, 0, len(line))
	for i, p := range line {
		coords = append(coords, []float64{p.Lat(), p.Lon()})
		if i > 0 {
			length += geo.Haversine(line[i-1], p)
		}
	}

	corridor := stringProp(f, tracks.PropCorridor, tracks.CorridorUnknown)
	return models.SegmentEntry{
		ID:           id,
		Corridor:     corridor,
		IsLoop:       corridor == tracks.CorridorLoop,
		Lines:        featureLines(f),
		LengthMeters: math.Round(length*10) / 10,
		Direction:    geo.CompassDirection(line[0], line[len(line)-1]),
		Polyline:     string(polyline.EncodeCoords(coords)),
	}
}
