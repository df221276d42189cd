package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/convergent-research/scholarmatch/internal/catalog"
	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/internal/proposal"
	"github.com/convergent-research/scholarmatch/pkg/openalex"
)

// apiMeta is the pagination envelope returned by search endpoints.
type apiMeta struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

type searchResponse struct {
	Results any     `json:"results"`
	Meta    apiMeta `json:"meta"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := openalex.Filters{
		Country:         q.Get("country"),
		Institution:     q.Get("institution"),
		ConceptID:       q.Get("concept"),
		MinHIndex:       intParam(q.Get("min_h_index")),
		MinCitations:    intParam(q.Get("min_citations")),
		InstitutionType: q.Get("institution_type"),
	}

	result, err := s.catalog.Search(r.Context(),
		catalog.Category(q.Get("category")),
		q.Get("q"),
		filters,
		intParam(q.Get("page")),
		intParam(q.Get("per_page")),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	var results any
	if result.Category == catalog.CategoryInstitutions {
		results = result.Institutions
	} else {
		results = result.Authors
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results: results,
		Meta: apiMeta{
			Count:   result.Meta.Count,
			Page:    result.Meta.Page,
			PerPage: result.Meta.PerPage,
		},
	})
}

func (s *Server) handleResearcher(w http.ResponseWriter, r *http.Request) {
	profile, err := s.catalog.ResearcherProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleInstitution(w http.ResponseWriter, r *http.Request) {
	profile, err := s.catalog.InstitutionProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	hints, err := s.catalog.Autocomplete(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": hints})
}

func (s *Server) handleConcepts(w http.ResponseWriter, r *http.Request) {
	concepts, err := s.catalog.TopConcepts(r.Context(), r.URL.Query().Get("field"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": concepts})
}

func (s *Server) handleProposals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	role := model.Role(q.Get("role"))
	if role == "" {
		role = model.RoleFaculty
	}

	result, err := s.proposals.List(r.Context(), proposal.ListRequest{
		Query:   q.Get("query"),
		Role:    role,
		Page:    intParam(q.Get("page")),
		PerPage: intParam(q.Get("per_page")),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.proposals.FindMatches(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func intParam(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
