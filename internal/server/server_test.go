package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/convergent-research/scholarmatch/internal/catalog"
	"github.com/convergent-research/scholarmatch/internal/config"
	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/internal/monitoring"
	"github.com/convergent-research/scholarmatch/internal/proposal"
	"github.com/convergent-research/scholarmatch/pkg/openalex"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// fakeCatalog serves canned upstream records or a fixed error.
type fakeCatalog struct {
	authors []model.Researcher
	author  *model.Researcher
	works   []model.Work
	err     error
}

func (f *fakeCatalog) SearchAuthors(_ context.Context, _ string, _ openalex.Filters, page, perPage int) (*openalex.Page[model.Researcher], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &openalex.Page[model.Researcher]{
		Results: f.authors,
		Meta:    openalex.Meta{Count: len(f.authors), Page: page, PerPage: perPage},
	}, nil
}

func (f *fakeCatalog) SearchInstitutions(_ context.Context, _ string, _ openalex.Filters, page, perPage int) (*openalex.Page[model.Institution], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &openalex.Page[model.Institution]{Meta: openalex.Meta{Page: page, PerPage: perPage}}, nil
}

func (f *fakeCatalog) GetAuthor(_ context.Context, _ string) (*model.Researcher, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.author, nil
}

func (f *fakeCatalog) GetAuthorWorks(_ context.Context, _ string, _, _ int) (*openalex.Page[model.Work], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &openalex.Page[model.Work]{Results: f.works}, nil
}

func (f *fakeCatalog) GetInstitution(_ context.Context, _ string) (*model.Institution, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Institution{ID: "I1", DisplayName: "Stanford University"}, nil
}

func (f *fakeCatalog) AutocompleteInstitutions(_ context.Context, _ string) ([]openalex.InstitutionHint, error) {
	return []openalex.InstitutionHint{{ID: "I1", DisplayName: "Stanford University"}}, f.err
}

func (f *fakeCatalog) TopConcepts(_ context.Context, _ string) ([]openalex.ConceptHint, error) {
	return []openalex.ConceptHint{{ID: "C1", DisplayName: "Biology"}}, f.err
}

// fakeStore serves fixture proposals and the roster.
type fakeStore struct {
	proposals []model.Proposal
	roster    []model.Researcher
}

func (s *fakeStore) ListProposals(_ context.Context) ([]model.Proposal, error) {
	return s.proposals, nil
}

func (s *fakeStore) GetProposal(_ context.Context, id string) (*model.Proposal, error) {
	for _, p := range s.proposals {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &model.NotFoundError{Kind: "proposal", ID: id}
}

func (s *fakeStore) ListRoster(_ context.Context) ([]model.Researcher, error) {
	return s.roster, nil
}

func (s *fakeStore) Seed(_ context.Context, _ []model.Proposal, _ []model.Researcher) error {
	return nil
}
func (s *fakeStore) Migrate(_ context.Context) error { return nil }
func (s *fakeStore) Close() error                    { return nil }

func newTestRouter(cat *fakeCatalog, st *fakeStore) http.Handler {
	if st == nil {
		st = &fakeStore{}
	}
	srv := New(
		catalog.NewService(cat),
		proposal.NewService(st, config.MatchConfig{DemoCompany: "BioTech Innovations Inc."}),
		monitoring.NewCollector(),
	)
	return srv.Router([]string{"*"})
}

func doRequest(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec, body := doRequest(t, newTestRouter(&fakeCatalog{}, nil), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{authors: []model.Researcher{
		{ID: "A1", DisplayName: "Jane Smith", SummaryStats: model.SummaryStats{HIndex: 20}},
		{ID: "A2", DisplayName: "John Doe"},
	}}

	rec, body := doRequest(t, newTestRouter(cat, nil), "/search?q=smith&page=1&per_page=10")

	require.Equal(t, http.StatusOK, rec.Code)
	results := body["results"].([]any)
	require.Len(t, results, 2)
	// Name match plus metrics ranks Smith first.
	first := results[0].(map[string]any)
	assert.Equal(t, "Jane Smith", first["display_name"])
	assert.NotZero(t, first["matchScore"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["count"])
	assert.Equal(t, float64(1), meta["page"])
	assert.Equal(t, float64(10), meta["perPage"])
}

func TestSearch_MissingQuery(t *testing.T) {
	t.Parallel()

	rec, body := doRequest(t, newTestRouter(&fakeCatalog{}, nil), "/search")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "required")
}

func TestSearch_UnknownCategory(t *testing.T) {
	t.Parallel()

	rec, _ := doRequest(t, newTestRouter(&fakeCatalog{}, nil), "/search?q=x&category=magazines")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_ErrorStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"upstream failure", &model.UpstreamError{Status: 503}, http.StatusInternalServerError},
		{"upstream timeout", &model.UpstreamTimeoutError{Err: context.DeadlineExceeded}, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, body := doRequest(t, newTestRouter(&fakeCatalog{err: tt.err}, nil), "/search?q=smith")
			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestResearcher_Success(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{
		author: &model.Researcher{ID: "A1", DisplayName: "Sarah Chen"},
		works:  []model.Work{{ID: "W1", DisplayName: "A Paper"}},
	}

	rec, body := doRequest(t, newTestRouter(cat, nil), "/researcher/A1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sarah Chen", body["display_name"])
	require.Len(t, body["recentWorks"].([]any), 1)
}

func TestResearcher_NotFound(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{err: &model.NotFoundError{Kind: "researcher", ID: "A404"}}
	rec, body := doRequest(t, newTestRouter(cat, nil), "/researcher/A404")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "A404")
}

func TestInstitution_Success(t *testing.T) {
	t.Parallel()

	rec, body := doRequest(t, newTestRouter(&fakeCatalog{}, nil), "/institution/I1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Stanford University", body["display_name"])
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()

	rec, body := doRequest(t, newTestRouter(&fakeCatalog{}, nil), "/institutions/autocomplete?q=stan")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["results"].([]any), 1)
}

func TestConcepts(t *testing.T) {
	t.Parallel()

	rec, body := doRequest(t, newTestRouter(&fakeCatalog{}, nil), "/concepts")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["results"].([]any), 1)
}

func TestProposals_RoleFilter(t *testing.T) {
	t.Parallel()

	st := &fakeStore{proposals: []model.Proposal{
		{ID: "prop-001", Company: model.Company{Name: "BioTech Innovations Inc."}},
		{ID: "prop-002", Company: model.Company{Name: "Quantum Dynamics Ltd."}},
	}}

	rec, body := doRequest(t, newTestRouter(&fakeCatalog{}, st), "/proposals?role=company")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["proposals"].([]any), 1)

	rec, body = doRequest(t, newTestRouter(&fakeCatalog{}, st), "/proposals")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["proposals"].([]any), 2)
}

func TestMatches_Success(t *testing.T) {
	t.Parallel()

	st := &fakeStore{
		proposals: []model.Proposal{{
			ID:    "prop-001",
			Title: "AI-Driven Drug Discovery",
			MatchingCriteria: model.MatchingCriteria{
				MinHIndex:         25,
				RequiredExpertise: []string{"Machine Learning"},
			},
		}},
		roster: []model.Researcher{{
			ID:           "r1",
			DisplayName:  "Sarah Chen",
			SummaryStats: model.SummaryStats{HIndex: 32},
			Concepts:     []model.Concept{{DisplayName: "Machine Learning"}},
		}},
	}

	rec, body := doRequest(t, newTestRouter(&fakeCatalog{}, st), "/proposals/prop-001/matches")

	require.Equal(t, http.StatusOK, rec.Code)
	results := body["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.NotZero(t, first["matchScore"])
	assert.NotEmpty(t, first["matchReasons"])

	prop := body["proposal"].(map[string]any)
	assert.Equal(t, "prop-001", prop["id"])
}

func TestMatches_UnknownProposal(t *testing.T) {
	t.Parallel()

	rec, _ := doRequest(t, newTestRouter(&fakeCatalog{}, &fakeStore{}), "/proposals/prop-999/matches")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats_CountsRequests(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeCatalog{}, nil)
	for i := 0; i < 3; i++ {
		doRequest(t, router, "/health")
	}

	rec, body := doRequest(t, router, "/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	requests := body["requests"].(map[string]any)
	assert.Equal(t, float64(3), requests["/health"])
}
