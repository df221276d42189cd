package model

// SummaryStats holds the aggregate citation metrics reported for an author
// or institution.
type SummaryStats struct {
	HIndex           int     `json:"h_index" yaml:"h_index"`
	I10Index         int     `json:"i10_index" yaml:"i10_index"`
	TwoYearCitedness float64 `json:"2yr_mean_citedness" yaml:"2yr_mean_citedness"`
}

// Affiliation is an institution an author is (or was last) affiliated with.
type Affiliation struct {
	ID          string `json:"id" yaml:"id"`
	ROR         string `json:"ror,omitempty" yaml:"ror,omitempty"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	CountryCode string `json:"country_code" yaml:"country_code"`
	Type        string `json:"type" yaml:"type"`
}

// Concept is a weighted subject classification. Score is 0-100.
type Concept struct {
	ID          string  `json:"id" yaml:"id"`
	DisplayName string  `json:"display_name" yaml:"display_name"`
	Level       int     `json:"level" yaml:"level"`
	Score       float64 `json:"score" yaml:"score"`
}

// YearCount is a single-year activity bucket.
type YearCount struct {
	Year         int `json:"year" yaml:"year"`
	WorksCount   int `json:"works_count" yaml:"works_count"`
	CitedByCount int `json:"cited_by_count" yaml:"cited_by_count"`
}

// Researcher is an author record from the scholarly catalog. Records are
// read-only: fetched fresh per request and never mutated.
type Researcher struct {
	ID           string        `json:"id" yaml:"id"`
	DisplayName  string        `json:"display_name" yaml:"display_name"`
	ORCID        string        `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	WorksCount   int           `json:"works_count" yaml:"works_count"`
	CitedByCount int           `json:"cited_by_count" yaml:"cited_by_count"`
	SummaryStats SummaryStats  `json:"summary_stats" yaml:"summary_stats"`
	Institutions []Affiliation `json:"last_known_institutions" yaml:"last_known_institutions"`
	Concepts     []Concept     `json:"x_concepts" yaml:"x_concepts"`
	CountsByYear []YearCount   `json:"counts_by_year,omitempty" yaml:"counts_by_year,omitempty"`
	WorksAPIURL  string        `json:"works_api_url,omitempty" yaml:"works_api_url,omitempty"`
	UpdatedDate  string        `json:"updated_date,omitempty" yaml:"updated_date,omitempty"`
}

// Geo is an institution's optional location.
type Geo struct {
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	Region  string `json:"region,omitempty" yaml:"region,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Institution types reported by the catalog.
const (
	InstitutionEducation  = "education"
	InstitutionHealthcare = "healthcare"
	InstitutionCompany    = "company"
	InstitutionArchive    = "archive"
	InstitutionNonprofit  = "nonprofit"
	InstitutionGovernment = "government"
	InstitutionFacility   = "facility"
	InstitutionOther      = "other"
)

// Institution is an institution record from the scholarly catalog.
type Institution struct {
	ID           string       `json:"id" yaml:"id"`
	DisplayName  string       `json:"display_name" yaml:"display_name"`
	ROR          string       `json:"ror,omitempty" yaml:"ror,omitempty"`
	CountryCode  string       `json:"country_code" yaml:"country_code"`
	Type         string       `json:"type" yaml:"type"`
	HomepageURL  string       `json:"homepage_url,omitempty" yaml:"homepage_url,omitempty"`
	ImageURL     string       `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	WorksCount   int          `json:"works_count" yaml:"works_count"`
	CitedByCount int          `json:"cited_by_count" yaml:"cited_by_count"`
	SummaryStats SummaryStats `json:"summary_stats" yaml:"summary_stats"`
	Geo          *Geo         `json:"geo,omitempty" yaml:"geo,omitempty"`
	Concepts     []Concept    `json:"x_concepts" yaml:"x_concepts"`
	UpdatedDate  string       `json:"updated_date,omitempty" yaml:"updated_date,omitempty"`
}

// TopConcepts returns the n highest-scored concepts, deduplicated by display
// name. The catalog does not guarantee concept names are unique across ids,
// so after sorting by score descending the first occurrence of each name is
// kept.
func TopConcepts(concepts []Concept, n int) []Concept {
	sorted := make([]Concept, len(concepts))
	copy(sorted, concepts)
	// Stable to preserve original order among equal scores.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Score > sorted[j-1].Score; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	seen := make(map[string]struct{}, len(sorted))
	out := make([]Concept, 0, n)
	for _, c := range sorted {
		if _, dup := seen[c.DisplayName]; dup {
			continue
		}
		seen[c.DisplayName] = struct{}{}
		out = append(out, c)
		if len(out) == n {
			break
		}
	}
	return out
}
