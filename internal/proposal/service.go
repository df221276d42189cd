// Package proposal serves the demo collaboration proposals: role-filtered
// listings and roster matching against a proposal's criteria.
package proposal

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/convergent-research/scholarmatch/internal/config"
	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/internal/store"
)

const defaultPerPage = 20

// Service lists proposals and matches the researcher roster against them.
type Service struct {
	store       store.Store
	demoCompany string
	minScore    int
}

// NewService creates the proposal service.
func NewService(st store.Store, cfg config.MatchConfig) *Service {
	return &Service{
		store:       st,
		demoCompany: cfg.DemoCompany,
		minScore:    cfg.MinScore,
	}
}

// ListRequest selects and pages a proposal listing.
type ListRequest struct {
	Query   string
	Role    model.Role
	Page    int
	PerPage int
}

// ListMeta is the pagination envelope for proposal listings.
type ListMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
}

// ListResult is one page of proposals.
type ListResult struct {
	Proposals []model.Proposal `json:"proposals"`
	Meta      ListMeta         `json:"meta"`
}

// List filters proposals by viewer role and free-text query, then applies
// offset pagination. The company role sees only its own proposals; faculty
// and admin see all.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	proposals, err := s.store.ListProposals(ctx)
	if err != nil {
		return nil, err
	}

	if req.Role == model.RoleCompany {
		filtered := proposals[:0:0]
		for _, p := range proposals {
			if p.Company.Name == s.demoCompany {
				filtered = append(filtered, p)
			}
		}
		proposals = filtered
	}

	if query := strings.ToLower(strings.TrimSpace(req.Query)); query != "" {
		filtered := proposals[:0:0]
		for _, p := range proposals {
			if strings.Contains(searchableText(p), query) {
				filtered = append(filtered, p)
			}
		}
		proposals = filtered
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	total := len(proposals)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	totalPages := (total + perPage - 1) / perPage

	zap.L().Debug("proposal listing",
		zap.String("role", string(req.Role)),
		zap.String("query", req.Query),
		zap.Int("total", total),
	)

	return &ListResult{
		Proposals: proposals[start:end],
		Meta: ListMeta{
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
		},
	}, nil
}

// searchableText joins the fields a free-text proposal query matches
// against.
func searchableText(p model.Proposal) string {
	parts := []string{
		p.Title,
		p.Company.Name,
		p.Company.Industry,
		p.Description,
		strings.Join(p.ResearchArea, " "),
		strings.Join(p.MatchingCriteria.RequiredExpertise, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}
