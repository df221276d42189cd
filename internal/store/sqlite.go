package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/convergent-research/scholarmatch/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	if dsn == ":memory:" {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS proposals (
	id  TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	doc TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS roster (
	id  TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	doc TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_proposals_seq ON proposals(seq);
CREATE INDEX IF NOT EXISTS idx_roster_seq ON roster(seq);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Seed replaces the fixture tables with the given records, preserving slice
// order for listings.
func (s *SQLiteStore) Seed(ctx context.Context, proposals []model.Proposal, roster []model.Researcher) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin seed")
	}
	defer tx.Rollback()

	for _, table := range []string{"proposals", "roster"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return eris.Wrapf(err, "sqlite: clear %s", table)
		}
	}

	for i, p := range proposals {
		doc, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal proposal %s", p.ID)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO proposals (id, seq, doc) VALUES (?, ?, ?)`, p.ID, i, string(doc)); err != nil {
			return eris.Wrapf(err, "sqlite: insert proposal %s", p.ID)
		}
	}

	for i, r := range roster {
		doc, err := json.Marshal(r)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal researcher %s", r.ID)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roster (id, seq, doc) VALUES (?, ?, ?)`, r.ID, i, string(doc)); err != nil {
			return eris.Wrapf(err, "sqlite: insert researcher %s", r.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit seed")
}

func (s *SQLiteStore) ListProposals(ctx context.Context) ([]model.Proposal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM proposals ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list proposals")
	}
	defer rows.Close()

	var out []model.Proposal
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan proposal")
		}
		var p model.Proposal
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal proposal")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate proposals")
}

func (s *SQLiteStore) GetProposal(ctx context.Context, id string) (*model.Proposal, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM proposals WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &model.NotFoundError{Kind: "proposal", ID: id}
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get proposal")
	}

	var p model.Proposal
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal proposal")
	}
	return &p, nil
}

func (s *SQLiteStore) ListRoster(ctx context.Context) ([]model.Researcher, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM roster ORDER BY seq`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list roster")
	}
	defer rows.Close()

	var out []model.Researcher
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan researcher")
		}
		var r model.Researcher
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal researcher")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate roster")
}
