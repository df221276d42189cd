package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/convergent-research/scholarmatch/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS proposals (
	id  TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	doc JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS roster (
	id  TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	doc JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_proposals_seq ON proposals(seq);
CREATE INDEX IF NOT EXISTS idx_roster_seq ON roster(seq);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Seed replaces the fixture tables with the given records, preserving slice
// order for listings.
func (s *PostgresStore) Seed(ctx context.Context, proposals []model.Proposal, roster []model.Researcher) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin seed")
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"proposals", "roster"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return eris.Wrapf(err, "postgres: clear %s", table)
		}
	}

	for i, p := range proposals {
		doc, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal proposal %s", p.ID)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO proposals (id, seq, doc) VALUES ($1, $2, $3)`, p.ID, i, doc); err != nil {
			return eris.Wrapf(err, "postgres: insert proposal %s", p.ID)
		}
	}

	for i, r := range roster {
		doc, err := json.Marshal(r)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal researcher %s", r.ID)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO roster (id, seq, doc) VALUES ($1, $2, $3)`, r.ID, i, doc); err != nil {
			return eris.Wrapf(err, "postgres: insert researcher %s", r.ID)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit seed")
}

func (s *PostgresStore) ListProposals(ctx context.Context) ([]model.Proposal, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM proposals ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list proposals")
	}
	defer rows.Close()

	var out []model.Proposal
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan proposal")
		}
		var p model.Proposal
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal proposal")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate proposals")
}

func (s *PostgresStore) GetProposal(ctx context.Context, id string) (*model.Proposal, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM proposals WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &model.NotFoundError{Kind: "proposal", ID: id}
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get proposal")
	}

	var p model.Proposal
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal proposal")
	}
	return &p, nil
}

func (s *PostgresStore) ListRoster(ctx context.Context) ([]model.Researcher, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM roster ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list roster")
	}
	defer rows.Close()

	var out []model.Researcher
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan researcher")
		}
		var r model.Researcher
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal researcher")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate roster")
}
