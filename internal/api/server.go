// Package api exposes the detected resource over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fidde/otel_resource_detector/internal/convert"
	"github.com/fidde/otel_resource_detector/pkg/resource"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/protobuf/encoding/protojson"
)

// Server is the resource inspection API server.
type Server struct {
	router *chi.Mux
	server *http.Server

	res        *resource.Resource
	detectedAt time.Time
	detectDur  time.Duration
}

// NewServer creates an API server exposing res, the outcome of the
// detection run that finished at detectedAt after detectDur.
func NewServer(addr string, res *resource.Resource, detectedAt time.Time, detectDur time.Duration) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		res:        res,
		detectedAt: detectedAt,
		detectDur:  detectDur,
	}

	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/resource", s.getResource)
		r.Get("/resource/proto", s.getResourceProto)
	})

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start starts the API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// getResource returns the detected resource as JSON.
func (s *Server) getResource(w http.ResponseWriter, r *http.Request) {
	response := struct {
		Attributes  resource.Attributes `json:"attributes"`
		Fingerprint string              `json:"fingerprint"`
		DetectedAt  time.Time           `json:"detected_at"`
		DetectionMS int64               `json:"detection_ms"`
	}{
		Attributes:  s.res.Attributes(),
		Fingerprint: s.res.Fingerprint(),
		DetectedAt:  s.detectedAt,
		DetectionMS: s.detectDur.Milliseconds(),
	}
	s.respondJSON(w, http.StatusOK, response)
}

// getResourceProto returns the detected resource in its OTLP JSON
// form.
func (s *Server) getResourceProto(w http.ResponseWriter, r *http.Request) {
	data, err := protojson.Marshal(convert.ToProto(s.res))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleHealth returns the health status of the API.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON writes a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}
