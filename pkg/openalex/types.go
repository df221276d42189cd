package openalex

import (
	"fmt"
	"strconv"
	"strings"
)

// Meta is the pagination envelope the catalog returns alongside results.
type Meta struct {
	Count            int `json:"count"`
	Page             int `json:"page"`
	PerPage          int `json:"per_page"`
	DBResponseTimeMS int `json:"db_response_time_ms,omitempty"`
}

// Page is one page of catalog records.
type Page[T any] struct {
	Results []T  `json:"results"`
	Meta    Meta `json:"meta"`
}

// Filters are the search predicates supported by the catalog. Zero values
// mean "not set". Clauses are joined conjunctively.
type Filters struct {
	Country         string
	Institution     string
	ConceptID       string
	MinHIndex       int
	MinCitations    int
	InstitutionType string
}

// authorClauses builds the filter clauses applicable to author search.
func (f Filters) authorClauses() []string {
	var parts []string
	if f.Country != "" {
		parts = append(parts, "last_known_institutions.country_code:"+f.Country)
	}
	if f.Institution != "" {
		parts = append(parts, "last_known_institutions.display_name:"+f.Institution)
	}
	if f.ConceptID != "" {
		parts = append(parts, "x_concepts.id:"+f.ConceptID)
	}
	if f.MinHIndex > 0 {
		parts = append(parts, "summary_stats.h_index:>"+strconv.Itoa(f.MinHIndex))
	}
	if f.MinCitations > 0 {
		parts = append(parts, "cited_by_count:>"+strconv.Itoa(f.MinCitations))
	}
	return parts
}

// institutionClauses builds the filter clauses applicable to institution
// search: country equality, citation floor, and institution type.
func (f Filters) institutionClauses() []string {
	var parts []string
	if f.Country != "" {
		parts = append(parts, "country_code:"+f.Country)
	}
	if f.MinCitations > 0 {
		parts = append(parts, "cited_by_count:>"+strconv.Itoa(f.MinCitations))
	}
	if f.InstitutionType != "" {
		parts = append(parts, "type:"+f.InstitutionType)
	}
	return parts
}

func joinClauses(parts []string) string {
	return strings.Join(parts, ",")
}

// InstitutionHint is a lightweight institution suggestion for autocomplete.
type InstitutionHint struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
}

// ConceptHint is a lightweight concept record.
type ConceptHint struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Field projections sent via the select parameter. Listing exactly the
// fields consumed keeps upstream responses small.
const (
	authorSelect      = "id,display_name,orcid,works_count,cited_by_count,summary_stats,last_known_institutions,x_concepts,counts_by_year,works_api_url,updated_date"
	institutionSelect = "id,display_name,ror,country_code,type,homepage_url,image_url,works_count,cited_by_count,summary_stats,geo,x_concepts,updated_date"
	workSelect        = "id,display_name,doi,publication_year,publication_date,cited_by_count,abstract_inverted_index"
)

// validateRecords rejects responses whose records are missing the identity
// fields every catalog record must carry, rather than passing them through
// half-formed.
func validateRecords[T any](kind string, records []T, identity func(T) (id, name string)) error {
	for i, r := range records {
		id, name := identity(r)
		if id == "" || name == "" {
			return fmt.Errorf("openalex: %s record %d missing id or display_name", kind, i)
		}
	}
	return nil
}
