// Package api exposes the analysis pipeline over HTTP.
//
// The server wraps the same pipeline.Runner the CLI uses, so both entry
// points share parsing, analysis, rendering, and caching. An optional
// store.Archive enables the /v1/circuits endpoints for persisting
// analyzed circuits.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/critpath/pkg/pipeline"
	"github.com/matzehuels/critpath/pkg/store"
)

// Server handles HTTP requests for circuit analysis.
type Server struct {
	runner  *pipeline.Runner
	archive store.Archive
	logger  *log.Logger
}

// New creates an API server. A nil archive disables the /v1/circuits
// endpoints; a nil logger falls back to log.Default().
func New(runner *pipeline.Runner, archive store.Archive, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, archive: archive, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/render", s.handleRender)

		if s.archive != nil {
			r.Post("/circuits", s.handleArchive)
			r.Get("/circuits", s.handleListCircuits)
			r.Get("/circuits/{id}", s.handleGetCircuit)
		}
	})

	return r
}
