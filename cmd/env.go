package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/convergent-research/scholarmatch/internal/catalog"
	"github.com/convergent-research/scholarmatch/internal/monitoring"
	"github.com/convergent-research/scholarmatch/internal/proposal"
	"github.com/convergent-research/scholarmatch/internal/store"
	"github.com/convergent-research/scholarmatch/pkg/openalex"
)

// appEnv bundles the wired services a command needs.
type appEnv struct {
	Store     store.Store
	Client    openalex.Client
	Catalog   *catalog.Service
	Proposals *proposal.Service
	Metrics   *monitoring.Collector
}

func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv opens the fixture store, seeds it, and wires the catalog and
// proposal services.
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	seed, err := store.LoadSeed(cfg.Store.SeedFile)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if err := st.Seed(ctx, seed.Proposals, seed.Roster); err != nil {
		_ = st.Close()
		return nil, err
	}

	metrics := monitoring.NewCollector()

	client := openalex.NewClient(
		openalex.WithBaseURL(cfg.Catalog.BaseURL),
		openalex.WithUserAgent(cfg.Catalog.UserAgent),
		openalex.WithMinInterval(cfg.Catalog.MinInterval()),
		openalex.WithTimeout(cfg.Catalog.Timeout()),
		openalex.WithMaxAttempts(cfg.Catalog.MaxAttempts),
		openalex.WithObserver(metrics.ObserveUpstream),
	)

	return &appEnv{
		Store:     st,
		Client:    client,
		Catalog:   catalog.NewService(client),
		Proposals: proposal.NewService(st, cfg.Match),
		Metrics:   metrics,
	}, nil
}
