package store

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/convergent-research/scholarmatch/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedFile is the fixture file layout: the demo proposals plus the fixed
// researcher roster used for proposal matching.
type SeedFile struct {
	Proposals []model.Proposal   `yaml:"proposals"`
	Roster    []model.Researcher `yaml:"roster"`
}

// LoadSeed parses the fixture file at path, or the embedded defaults when
// path is empty.
func LoadSeed(path string) (*SeedFile, error) {
	data := defaultSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "store: read seed file %s", path)
		}
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, eris.Wrap(err, "store: parse seed file")
	}
	if len(seed.Proposals) == 0 {
		return nil, eris.New("store: seed file has no proposals")
	}
	return &seed, nil
}
