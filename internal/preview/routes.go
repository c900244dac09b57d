package preview

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Routes returns the compressed, request-logged router.
func (s *Server) Routes() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(s.sendNotFound)

	router.HandlerFunc(http.MethodGet, "/data/cta/chicago_track_segments.geojson", s.segmentsFileHandler)
	router.HandlerFunc(http.MethodGet, "/api/corridors.json", s.corridorsHandler)
	router.HandlerFunc(http.MethodGet, "/api/segments/:id", s.segmentHandler)

	return NewRequestLoggingMiddleware(s.Logger)(CompressionMiddleware(router))
}
