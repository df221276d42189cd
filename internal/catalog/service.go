package catalog

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/internal/scorer"
	"github.com/convergent-research/scholarmatch/pkg/openalex"
)

// Category selects which collection a search runs against.
type Category string

const (
	CategoryAuthors      Category = "authors"
	CategoryInstitutions Category = "institutions"
)

const recentWorksCount = 10

// Service composes the catalog client and the scoring engine into
// search-and-rank operations.
type Service struct {
	client openalex.Client
}

// NewService creates the aggregation service.
func NewService(client openalex.Client) *Service {
	return &Service{client: client}
}

// SearchResult is one ranked page of search hits. Exactly one of Authors or
// Institutions is populated, per Category.
type SearchResult struct {
	Category     Category
	Authors      []model.ScoredResearcher
	Institutions []model.Institution
	Meta         openalex.Meta
}

// Search validates the request, fetches one upstream page, deduplicates by
// identity, and (for authors) scores and ranks the hits. Pagination metadata
// passes through from upstream.
func (s *Service) Search(ctx context.Context, category Category, query string, filters openalex.Filters, page, perPage int) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.NewValidationError("query parameter 'q' is required")
	}

	switch category {
	case CategoryInstitutions:
		return s.searchInstitutions(ctx, query, filters, page, perPage)
	case CategoryAuthors, "":
		return s.searchAuthors(ctx, query, filters, page, perPage)
	default:
		return nil, model.NewValidationError("unknown category %q", category)
	}
}

func (s *Service) searchAuthors(ctx context.Context, query string, filters openalex.Filters, page, perPage int) (*SearchResult, error) {
	resp, err := s.client.SearchAuthors(ctx, query, filters, page, perPage)
	if err != nil {
		return nil, err
	}

	unique := dedupByID(resp.Results, func(r model.Researcher) string { return r.ID })

	scored := make([]model.ScoredResearcher, len(unique))
	for i, r := range unique {
		scored[i] = model.ScoredResearcher{
			Researcher: r,
			MatchScore: scorer.ScoreQuery(r, query),
		}
	}

	// Stable: equal scores keep their upstream relative order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	zap.L().Debug("author search complete",
		zap.String("query", query),
		zap.Int("upstream", len(resp.Results)),
		zap.Int("unique", len(unique)),
	)

	return &SearchResult{
		Category: CategoryAuthors,
		Authors:  scored,
		Meta:     resp.Meta,
	}, nil
}

func (s *Service) searchInstitutions(ctx context.Context, query string, filters openalex.Filters, page, perPage int) (*SearchResult, error) {
	resp, err := s.client.SearchInstitutions(ctx, query, filters, page, perPage)
	if err != nil {
		return nil, err
	}

	// Institutions keep upstream order; no scoring applies.
	unique := dedupByID(resp.Results, func(i model.Institution) string { return i.ID })

	return &SearchResult{
		Category:     CategoryInstitutions,
		Institutions: unique,
		Meta:         resp.Meta,
	}, nil
}

// ResearcherProfile is a researcher record joined with their most-cited
// works and top concepts.
type ResearcherProfile struct {
	model.Researcher
	RecentWorks []model.Work    `json:"recentWorks"`
	TopConcepts []model.Concept `json:"topConcepts"`
}

// ResearcherProfile fetches an author and their works concurrently and joins
// the results. Either failure fails the whole call; the errgroup context
// cancels the sibling fetch so an aborted request does not waste throttle
// slots.
func (s *Service) ResearcherProfile(ctx context.Context, id string) (*ResearcherProfile, error) {
	if id == "" {
		return nil, model.NewValidationError("researcher id is required")
	}

	var (
		author *model.Researcher
		works  *openalex.Page[model.Work]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = s.client.GetAuthor(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		works, err = s.client.GetAuthorWorks(gctx, id, 1, recentWorksCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ResearcherProfile{
		Researcher:  *author,
		RecentWorks: works.Results,
		TopConcepts: model.TopConcepts(author.Concepts, 10),
	}, nil
}

// InstitutionProfile is an institution record with its deduplicated top
// concepts.
type InstitutionProfile struct {
	model.Institution
	TopConcepts []model.Concept `json:"topConcepts"`
}

// InstitutionProfile fetches a single institution by identity.
func (s *Service) InstitutionProfile(ctx context.Context, id string) (*InstitutionProfile, error) {
	if id == "" {
		return nil, model.NewValidationError("institution id is required")
	}

	inst, err := s.client.GetInstitution(ctx, id)
	if err != nil {
		return nil, err
	}

	return &InstitutionProfile{
		Institution: *inst,
		TopConcepts: model.TopConcepts(inst.Concepts, 10),
	}, nil
}

// Autocomplete returns institution suggestions for the query.
func (s *Service) Autocomplete(ctx context.Context, query string) ([]openalex.InstitutionHint, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.NewValidationError("query parameter 'q' is required")
	}
	return s.client.AutocompleteInstitutions(ctx, query)
}

// TopConcepts returns the catalog's most-published concepts, optionally
// narrowed to a field.
func (s *Service) TopConcepts(ctx context.Context, field string) ([]openalex.ConceptHint, error) {
	return s.client.TopConcepts(ctx, field)
}

// dedupByID keeps the first occurrence of each identity, preserving order.
func dedupByID[T any](records []T, id func(T) string) []T {
	seen := make(map[string]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		key := id(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
