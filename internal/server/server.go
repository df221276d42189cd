// Package server exposes the search, researcher, and proposal services over
// a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/convergent-research/scholarmatch/internal/catalog"
	"github.com/convergent-research/scholarmatch/internal/monitoring"
	"github.com/convergent-research/scholarmatch/internal/proposal"
)

// Server wires the services into HTTP handlers.
type Server struct {
	catalog   *catalog.Service
	proposals *proposal.Service
	metrics   *monitoring.Collector
}

// New creates the API server.
func New(cat *catalog.Service, props *proposal.Service, metrics *monitoring.Collector) *Server {
	return &Server{
		catalog:   cat,
		proposals: props,
		metrics:   metrics,
	}
}

// Router builds the API route tree.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Get("/search", s.handleSearch)
	r.Get("/researcher/{id}", s.handleResearcher)
	r.Get("/institution/{id}", s.handleInstitution)
	r.Get("/institutions/autocomplete", s.handleAutocomplete)
	r.Get("/concepts", s.handleConcepts)
	r.Get("/proposals", s.handleProposals)
	r.Get("/proposals/{id}/matches", s.handleMatches)

	return r
}
