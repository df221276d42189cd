package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/convergent-research/scholarmatch/internal/model"
)

func researcherIdentity(r model.Researcher) (string, string) { return r.ID, r.DisplayName }

func institutionIdentity(i model.Institution) (string, string) { return i.ID, i.DisplayName }

func workIdentity(w model.Work) (string, string) { return w.ID, w.DisplayName }

// SearchAuthors performs a full-text author search with conjunctive filter
// predicates and page/perPage bounds.
func (c *httpClient) SearchAuthors(ctx context.Context, query string, filters Filters, page, perPage int) (*Page[model.Researcher], error) {
	params := pageParams(page, perPage)
	params.Set("search", query)
	params.Set("select", authorSelect)
	if clauses := filters.authorClauses(); len(clauses) > 0 {
		params.Set("filter", joinClauses(clauses))
	}

	body, err := c.get(ctx, "search_authors", "/authors", params)
	if err != nil {
		return nil, err
	}

	var result Page[model.Researcher]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal author search")
	}
	if err := validateRecords("author", result.Results, researcherIdentity); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchInstitutions performs a full-text institution search. Filters are
// limited to country, citation floor, and institution type.
func (c *httpClient) SearchInstitutions(ctx context.Context, query string, filters Filters, page, perPage int) (*Page[model.Institution], error) {
	params := pageParams(page, perPage)
	params.Set("search", query)
	params.Set("select", institutionSelect)
	if clauses := filters.institutionClauses(); len(clauses) > 0 {
		params.Set("filter", joinClauses(clauses))
	}

	body, err := c.get(ctx, "search_institutions", "/institutions", params)
	if err != nil {
		return nil, err
	}

	var result Page[model.Institution]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal institution search")
	}
	if err := validateRecords("institution", result.Results, institutionIdentity); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAuthor fetches a single author by identity. A bare or fully-qualified
// id is accepted. A 404 from the catalog becomes *model.NotFoundError.
func (c *httpClient) GetAuthor(ctx context.Context, id string) (*model.Researcher, error) {
	cleanID := normalizeID(id)
	params := url.Values{}
	params.Set("select", authorSelect)

	body, err := c.get(ctx, "get_author", "/authors/"+url.PathEscape(cleanID), params)
	if err != nil {
		return nil, notFoundOr(err, "researcher", cleanID)
	}

	var author model.Researcher
	if err := json.Unmarshal(body, &author); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal author")
	}
	if author.ID == "" || author.DisplayName == "" {
		return nil, eris.Errorf("openalex: author %s missing id or display_name", cleanID)
	}
	return &author, nil
}

// GetAuthorWorks fetches an author's works sorted by citation count
// descending.
func (c *httpClient) GetAuthorWorks(ctx context.Context, id string, page, perPage int) (*Page[model.Work], error) {
	cleanID := normalizeID(id)
	params := pageParams(page, perPage)
	params.Set("filter", "authorships.author.id:"+cleanID)
	params.Set("sort", "cited_by_count:desc")
	params.Set("select", workSelect)

	body, err := c.get(ctx, "get_author_works", "/works", params)
	if err != nil {
		return nil, err
	}

	var result Page[model.Work]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal works")
	}
	if err := validateRecords("work", result.Results, workIdentity); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetInstitution fetches a single institution by identity.
func (c *httpClient) GetInstitution(ctx context.Context, id string) (*model.Institution, error) {
	cleanID := normalizeID(id)
	params := url.Values{}
	params.Set("select", institutionSelect)

	body, err := c.get(ctx, "get_institution", "/institutions/"+url.PathEscape(cleanID), params)
	if err != nil {
		return nil, notFoundOr(err, "institution", cleanID)
	}

	var inst model.Institution
	if err := json.Unmarshal(body, &inst); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal institution")
	}
	if inst.ID == "" || inst.DisplayName == "" {
		return nil, eris.Errorf("openalex: institution %s missing id or display_name", cleanID)
	}
	return &inst, nil
}

// AutocompleteInstitutions returns lightweight institution suggestions for
// the query.
func (c *httpClient) AutocompleteInstitutions(ctx context.Context, query string) ([]InstitutionHint, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("per_page", "10")

	body, err := c.get(ctx, "autocomplete_institutions", "/institutions", params)
	if err != nil {
		return nil, err
	}

	var result Page[InstitutionHint]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal institution hints")
	}
	return result.Results, nil
}

// TopConcepts returns the most-published concepts, optionally narrowed by a
// display-name search.
func (c *httpClient) TopConcepts(ctx context.Context, field string) ([]ConceptHint, error) {
	params := url.Values{}
	params.Set("per_page", "20")
	params.Set("sort", "works_count:desc")
	if field != "" {
		params.Set("filter", "display_name.search:"+field)
	}

	body, err := c.get(ctx, "top_concepts", "/concepts", params)
	if err != nil {
		return nil, err
	}

	var result Page[ConceptHint]
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "openalex: unmarshal concepts")
	}
	return result.Results, nil
}

// notFoundOr converts an upstream 404 on a by-id fetch into a typed
// NotFoundError; other errors pass through unchanged.
func notFoundOr(err error, kind, id string) error {
	var ue *model.UpstreamError
	if errors.As(err, &ue) && ue.Status == http.StatusNotFound {
		return &model.NotFoundError{Kind: kind, ID: id}
	}
	return err
}
