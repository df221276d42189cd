package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_EmbeddedDefaults(t *testing.T) {
	t.Parallel()

	seed, err := LoadSeed("")

	require.NoError(t, err)
	require.Len(t, seed.Proposals, 8)
	require.Len(t, seed.Roster, 2)

	first := seed.Proposals[0]
	assert.Equal(t, "prop-001", first.ID)
	assert.Equal(t, "BioTech Innovations Inc.", first.Company.Name)
	assert.NotEmpty(t, first.MatchingCriteria.RequiredExpertise)

	chen := seed.Roster[0]
	assert.Equal(t, "Dr. Sarah Chen", chen.DisplayName)
	assert.Equal(t, 32, chen.SummaryStats.HIndex)
	assert.Equal(t, 4523, chen.CitedByCount)
}

func TestLoadSeed_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
proposals:
  - id: prop-100
    title: Custom Proposal
    company:
      name: Acme Labs
roster:
  - id: r1
    display_name: Dr. Custom
`), 0o644))

	seed, err := LoadSeed(path)

	require.NoError(t, err)
	require.Len(t, seed.Proposals, 1)
	assert.Equal(t, "Custom Proposal", seed.Proposals[0].Title)
	require.Len(t, seed.Roster, 1)
	assert.Equal(t, "Dr. Custom", seed.Roster[0].DisplayName)
}

func TestLoadSeed_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadSeed("/nonexistent/seed.yaml")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("proposals: []\n"), 0o644))
	_, err = LoadSeed(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no proposals")
}
