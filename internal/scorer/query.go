package scorer

import (
	"math"
	"strings"

	"github.com/convergent-research/scholarmatch/internal/model"
)

// ScoreQuery computes a 0-100 relevance score for a researcher against a
// free-text query. The function is deterministic and monotonically
// increasing in each of the researcher's aggregate metrics.
//
// Base 50, plus capped metric boosts (h-index up to 25, citations up to 15,
// works up to 10), plus 10 for a case-insensitive name match and 5 for a
// concept match.
func ScoreQuery(r model.Researcher, query string) int {
	score := 50.0

	score += math.Min(float64(r.SummaryStats.HIndex)/2, 25)
	score += math.Min(float64(r.CitedByCount)/10000, 15)
	score += math.Min(float64(r.WorksCount)/50, 10)

	queryLower := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.DisplayName), queryLower) {
		score += 10
	}
	for _, c := range r.Concepts {
		if strings.Contains(strings.ToLower(c.DisplayName), queryLower) {
			score += 5
			break
		}
	}

	return int(math.Min(math.Round(score), 100))
}
