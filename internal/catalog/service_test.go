package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/pkg/openalex"
)

// stubClient returns canned pages and records errors per operation.
type stubClient struct {
	authors      openalex.Page[model.Researcher]
	institutions openalex.Page[model.Institution]
	works        openalex.Page[model.Work]
	author       *model.Researcher
	institution  *model.Institution
	hints        []openalex.InstitutionHint
	concepts     []openalex.ConceptHint

	authorErr error
	worksErr  error
	searchErr error
}

func (s *stubClient) SearchAuthors(_ context.Context, _ string, _ openalex.Filters, _, _ int) (*openalex.Page[model.Researcher], error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return &s.authors, nil
}

func (s *stubClient) SearchInstitutions(_ context.Context, _ string, _ openalex.Filters, _, _ int) (*openalex.Page[model.Institution], error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return &s.institutions, nil
}

func (s *stubClient) GetAuthor(_ context.Context, _ string) (*model.Researcher, error) {
	if s.authorErr != nil {
		return nil, s.authorErr
	}
	return s.author, nil
}

func (s *stubClient) GetAuthorWorks(_ context.Context, _ string, _, _ int) (*openalex.Page[model.Work], error) {
	if s.worksErr != nil {
		return nil, s.worksErr
	}
	return &s.works, nil
}

func (s *stubClient) GetInstitution(_ context.Context, _ string) (*model.Institution, error) {
	return s.institution, nil
}

func (s *stubClient) AutocompleteInstitutions(_ context.Context, _ string) ([]openalex.InstitutionHint, error) {
	return s.hints, nil
}

func (s *stubClient) TopConcepts(_ context.Context, _ string) ([]openalex.ConceptHint, error) {
	return s.concepts, nil
}

func author(id, name string, h, cites, works int) model.Researcher {
	return model.Researcher{
		ID:           id,
		DisplayName:  name,
		WorksCount:   works,
		CitedByCount: cites,
		SummaryStats: model.SummaryStats{HIndex: h},
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{})
	_, err := svc.Search(context.Background(), CategoryAuthors, "   ", openalex.Filters{}, 1, 10)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestSearch_UnknownCategory(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{})
	_, err := svc.Search(context.Background(), "magazines", "smith", openalex.Filters{}, 1, 10)

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "magazines")
}

func TestSearch_DefaultsToAuthors(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{
		authors: openalex.Page[model.Researcher]{
			Results: []model.Researcher{author("A1", "Jane Smith", 10, 100, 10)},
			Meta:    openalex.Meta{Count: 1},
		},
	})

	result, err := svc.Search(context.Background(), "", "smith", openalex.Filters{}, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, CategoryAuthors, result.Category)
	require.Len(t, result.Authors, 1)
}

func TestSearch_DeduplicatesAndRanks(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{
		authors: openalex.Page[model.Researcher]{
			Results: []model.Researcher{
				author("A1", "Weak Match", 2, 100, 5),
				author("A2", "Strong Smith", 60, 500000, 1000),
				author("A1", "Weak Match Duplicate", 2, 100, 5),
				author("A3", "Middling Author", 20, 5000, 100),
			},
			Meta: openalex.Meta{Count: 4},
		},
	})

	result, err := svc.Search(context.Background(), CategoryAuthors, "smith", openalex.Filters{}, 1, 10)

	require.NoError(t, err)
	require.Len(t, result.Authors, 3, "duplicate id keeps only its first occurrence")
	assert.Equal(t, "A2", result.Authors[0].ID)
	assert.Equal(t, "Weak Match", result.Authors[2].DisplayName)

	// Scores are descending.
	for i := 1; i < len(result.Authors); i++ {
		assert.GreaterOrEqual(t, result.Authors[i-1].MatchScore, result.Authors[i].MatchScore)
	}
}

func TestSearch_StableOrderForEqualScores(t *testing.T) {
	t.Parallel()

	// Identical metrics, so identical scores: upstream order must hold.
	svc := NewService(&stubClient{
		authors: openalex.Page[model.Researcher]{
			Results: []model.Researcher{
				author("A1", "First Twin", 10, 1000, 50),
				author("A2", "Second Twin", 10, 1000, 50),
				author("A3", "Third Twin", 10, 1000, 50),
			},
		},
	})

	result, err := svc.Search(context.Background(), CategoryAuthors, "twin", openalex.Filters{}, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, "A1", result.Authors[0].ID)
	assert.Equal(t, "A2", result.Authors[1].ID)
	assert.Equal(t, "A3", result.Authors[2].ID)
}

func TestSearch_Institutions(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{
		institutions: openalex.Page[model.Institution]{
			Results: []model.Institution{
				{ID: "I1", DisplayName: "Stanford University"},
				{ID: "I1", DisplayName: "Stanford University Duplicate"},
				{ID: "I2", DisplayName: "MIT"},
			},
			Meta: openalex.Meta{Count: 3},
		},
	})

	result, err := svc.Search(context.Background(), CategoryInstitutions, "university", openalex.Filters{}, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, CategoryInstitutions, result.Category)
	require.Len(t, result.Institutions, 2)
	assert.Equal(t, "Stanford University", result.Institutions[0].DisplayName)
}

func TestSearch_UpstreamErrorPassesThrough(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{searchErr: &model.UpstreamError{Status: 503}})
	_, err := svc.Search(context.Background(), CategoryAuthors, "smith", openalex.Filters{}, 1, 10)

	var ue *model.UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 503, ue.Status)
}

func TestResearcherProfile(t *testing.T) {
	t.Parallel()

	a := author("A1", "Sarah Chen", 32, 4523, 127)
	a.Concepts = []model.Concept{
		{ID: "C1", DisplayName: "Machine Learning", Score: 90},
		{ID: "C2", DisplayName: "Machine Learning", Score: 40},
		{ID: "C3", DisplayName: "Genomics", Score: 70},
	}

	svc := NewService(&stubClient{
		author: &a,
		works: openalex.Page[model.Work]{
			Results: []model.Work{{ID: "W1", DisplayName: "A Paper", CitedByCount: 900}},
		},
	})

	profile, err := svc.ResearcherProfile(context.Background(), "A1")

	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", profile.DisplayName)
	require.Len(t, profile.RecentWorks, 1)
	require.Len(t, profile.TopConcepts, 2, "duplicate concept names collapse")
	assert.Equal(t, "C1", profile.TopConcepts[0].ID)
}

func TestResearcherProfile_EmptyID(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{})
	_, err := svc.ResearcherProfile(context.Background(), "")

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestResearcherProfile_EitherFetchFailureFailsTheCall(t *testing.T) {
	t.Parallel()

	a := author("A1", "Sarah Chen", 32, 4523, 127)

	svc := NewService(&stubClient{
		author:   &a,
		worksErr: errors.New("works fetch failed"),
	})

	_, err := svc.ResearcherProfile(context.Background(), "A1")
	require.Error(t, err)

	svc = NewService(&stubClient{
		authorErr: &model.NotFoundError{Kind: "researcher", ID: "A1"},
	})

	_, err = svc.ResearcherProfile(context.Background(), "A1")
	var nf *model.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestInstitutionProfile(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{
		institution: &model.Institution{
			ID:          "I1",
			DisplayName: "Stanford University",
			Concepts: []model.Concept{
				{ID: "C1", DisplayName: "Computer Science", Score: 80},
			},
		},
	})

	profile, err := svc.InstitutionProfile(context.Background(), "I1")

	require.NoError(t, err)
	assert.Equal(t, "Stanford University", profile.DisplayName)
	require.Len(t, profile.TopConcepts, 1)
}

func TestAutocomplete_EmptyQuery(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubClient{})
	_, err := svc.Autocomplete(context.Background(), "")

	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
}
