// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists filings, EPS observations, and resolved figures in
// SQLite, and maintains a full-text index over converted filing text.
//
// Observations are append-only with an autoincrement id, so replaying them
// through the resolver reproduces the original fold order exactly.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// Store manages the filings SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the filings database at cfg.DBPath and ensures the
// schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("store: no database path configured")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}

	if err := s.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates the tables and the full-text index if they do not
// exist. Open calls it; `store init` calls it directly.
func (s *Store) InitSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS filings (
			accession TEXT PRIMARY KEY,
			cik TEXT,
			ticker TEXT,
			company TEXT,
			form TEXT,
			filed TEXT,
			report_date TEXT,
			source_url TEXT,
			doc_path TEXT,
			conversion_status TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS observations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			accession TEXT NOT NULL REFERENCES filings(accession),
			value REAL NOT NULL,
			observed_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_observations_accession ON observations(accession)`,
		`CREATE TABLE IF NOT EXISTS resolved (
			accession TEXT PRIMARY KEY REFERENCES filings(accession),
			value REAL NOT NULL,
			observations INTEGER NOT NULL DEFAULT 0,
			resolved_at TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// Standalone FTS5 table: filing text lives on disk, not in a relational
	// row, so there is no content table to mirror with triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='filing_text'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		if _, err := s.db.Exec(
			`CREATE VIRTUAL TABLE filing_text USING fts5(accession UNINDEXED, body)`,
		); err != nil {
			return fmt.Errorf("creating FTS table: %w", err)
		}
	}

	return nil
}

// UpsertFiling inserts or refreshes a filing's metadata row.
func (s *Store) UpsertFiling(ctx context.Context, f types.Filing) error {
	filed := ""
	if !f.Filed.IsZero() {
		filed = f.Filed.Format("2006-01-02")
	}
	reportDate := ""
	if !f.ReportDate.IsZero() {
		reportDate = f.ReportDate.Format("2006-01-02")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO filings (accession, cik, ticker, company, form, filed, report_date, source_url, doc_path, conversion_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(accession) DO UPDATE SET
			cik=excluded.cik, ticker=excluded.ticker, company=excluded.company,
			form=excluded.form, filed=excluded.filed, report_date=excluded.report_date,
			source_url=excluded.source_url, doc_path=excluded.doc_path,
			conversion_status=excluded.conversion_status`,
		f.Accession, f.CIK, f.Ticker, f.Company, f.Form, filed, reportDate,
		f.SourceURL, f.DocPath, string(f.ConversionStatus),
	)
	if err != nil {
		return fmt.Errorf("upserting filing %s: %w", f.Accession, err)
	}
	return nil
}

// AddObservation appends one EPS observation for a filing. A stub filing
// row is created when the id has no metadata yet (ad-hoc corpora identify
// filings by filename rather than accession).
func (s *Store) AddObservation(ctx context.Context, filing string, value float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := addObservation(ctx, tx, filing, value); err != nil {
		return err
	}
	return tx.Commit()
}

// AddObservations appends a sequence of observations in order, in one
// transaction. The autoincrement id records the order for later replay.
func (s *Store) AddObservations(ctx context.Context, observations []types.Observation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, obs := range observations {
		if err := addObservation(ctx, tx, obs.Filing, obs.Value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func addObservation(ctx context.Context, tx *sql.Tx, filing string, value float64) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO filings (accession) VALUES (?)`, filing,
	); err != nil {
		return fmt.Errorf("inserting filing stub: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO observations (accession, value, observed_at) VALUES (?, ?, ?)`,
		filing, value, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting observation for %s: %w", filing, err)
	}
	return nil
}

// Observations returns every stored observation in insertion order.
func (s *Store) Observations(ctx context.Context) ([]types.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT accession, value FROM observations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying observations: %w", err)
	}
	defer rows.Close()

	var observations []types.Observation
	for rows.Next() {
		var obs types.Observation
		if err := rows.Scan(&obs.Filing, &obs.Value); err != nil {
			return nil, fmt.Errorf("scanning observation: %w", err)
		}
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

// Stats holds row counts for the `store stats` command.
type Stats struct {
	Filings      int
	Observations int
	Resolved     int
	Indexed      int
}

// Stats reports how many filings, observations, resolved figures, and
// indexed texts the database holds.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT count(*) FROM filings`, &st.Filings},
		{`SELECT count(*) FROM observations`, &st.Observations},
		{`SELECT count(*) FROM resolved`, &st.Resolved},
		{`SELECT count(*) FROM filing_text`, &st.Indexed},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("counting rows: %w", err)
		}
	}
	return st, nil
}
