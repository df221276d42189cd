package scorer

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/convergent-research/scholarmatch/internal/model"
)

// Criteria score weights. Expertise overlap dominates because it is the only
// criteria-specific signal; the two bonuses reward meeting the proposal's
// explicit metric floors.
const (
	expertiseWeight = 60
	hIndexBonus     = 20
	citationBonus   = 20
)

var citationPrinter = message.NewPrinter(language.English)

// ScoreCriteria evaluates a researcher against a proposal's matching
// criteria, returning a 0-100 score and human-readable reasons.
//
// Reasons always include the researcher's h-index and citation count (with
// thousands separators); when any required expertise terms match the
// researcher's concepts, a joined expertise line follows in the criteria's
// order.
func ScoreCriteria(r model.Researcher, criteria model.MatchingCriteria) (int, []string) {
	reasons := []string{
		fmt.Sprintf("H-Index: %d", r.SummaryStats.HIndex),
		citationPrinter.Sprintf("Citations: %d", r.CitedByCount),
	}

	matched := matchedExpertise(r, criteria.RequiredExpertise)
	if len(matched) > 0 {
		reasons = append(reasons, "Expertise: "+strings.Join(matched, ", "))
	}

	score := 0.0
	if len(criteria.RequiredExpertise) > 0 {
		score += expertiseWeight * float64(len(matched)) / float64(len(criteria.RequiredExpertise))
	}
	if r.SummaryStats.HIndex >= criteria.MinHIndex {
		score += hIndexBonus
	}
	if r.CitedByCount >= criteria.MinCitations {
		score += citationBonus
	}

	return int(math.Min(math.Round(score), 100)), reasons
}

// matchedExpertise returns the subset of required terms that match any of
// the researcher's concept names, in the criteria's order. A term matches a
// concept when either contains the other, case-insensitively.
func matchedExpertise(r model.Researcher, required []string) []string {
	var matched []string
	for _, term := range required {
		termLower := strings.ToLower(term)
		for _, c := range r.Concepts {
			nameLower := strings.ToLower(c.DisplayName)
			if strings.Contains(nameLower, termLower) || strings.Contains(termLower, nameLower) {
				matched = append(matched, term)
				break
			}
		}
	}
	return matched
}
