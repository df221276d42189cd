package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/convergent-research/scholarmatch/internal/config"
	"github.com/convergent-research/scholarmatch/internal/model"
)

// Store holds the read-only proposal and roster fixtures. Records never
// change after seeding; listings preserve seed order.
type Store interface {
	ListProposals(ctx context.Context) ([]model.Proposal, error)
	GetProposal(ctx context.Context, id string) (*model.Proposal, error)
	ListRoster(ctx context.Context) ([]model.Researcher, error)

	Seed(ctx context.Context, proposals []model.Proposal, roster []model.Researcher) error
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
