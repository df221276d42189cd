package proposal

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/internal/scorer"
)

// MatchMeta is the result-count envelope for a match listing.
type MatchMeta struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// MatchOutcome is the ranked, explained set of candidate researchers for a
// proposal, plus the proposal's identity and criteria as context.
type MatchOutcome struct {
	Results  []model.MatchResult `json:"results"`
	Proposal model.ProposalRef   `json:"proposal"`
	Meta     MatchMeta           `json:"meta"`
}

// FindMatches scores every roster researcher against the proposal's
// matching criteria and returns them ranked by score descending (ties keep
// roster order). When a minimum score is configured, candidates below it
// are dropped; the default of zero keeps the whole roster annotated.
func (s *Service) FindMatches(ctx context.Context, proposalID string) (*MatchOutcome, error) {
	if proposalID == "" {
		return nil, model.NewValidationError("proposal id is required")
	}

	prop, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	roster, err := s.store.ListRoster(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.MatchResult, 0, len(roster))
	for _, r := range roster {
		score, reasons := scorer.ScoreCriteria(r, prop.MatchingCriteria)
		if score < s.minScore {
			continue
		}
		results = append(results, model.MatchResult{
			Researcher:   r,
			MatchScore:   score,
			MatchReasons: reasons,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	zap.L().Debug("proposal matching complete",
		zap.String("proposal", prop.ID),
		zap.Int("roster", len(roster)),
		zap.Int("matches", len(results)),
	)

	return &MatchOutcome{
		Results:  results,
		Proposal: prop.Ref(),
		Meta: MatchMeta{
			Count:   len(results),
			Page:    1,
			PerPage: defaultPerPage,
		},
	}, nil
}
