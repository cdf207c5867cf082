// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// IndexText replaces the full-text index entry for one filing.
func (s *Store) IndexText(ctx context.Context, filing, body string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM filing_text WHERE accession = ?`, filing,
	); err != nil {
		return fmt.Errorf("removing old index entry for %s: %w", filing, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO filing_text (accession, body) VALUES (?, ?)`, filing, body,
	); err != nil {
		return fmt.Errorf("indexing %s: %w", filing, err)
	}
	return tx.Commit()
}

// IndexTexts walks a directory of converted filing texts and indexes each
// one, printing per-file progress to w. The filename without extension is
// the filing id. Returns the number of files indexed.
func (s *Store) IndexTexts(ctx context.Context, textsDir string, w io.Writer) (int, error) {
	entries, err := os.ReadDir(textsDir)
	if err != nil {
		return 0, fmt.Errorf("reading text directory %s: %w", textsDir, err)
	}

	var indexed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		select {
		case <-ctx.Done():
			return indexed, ctx.Err()
		default:
		}

		filing := strings.TrimSuffix(entry.Name(), ".txt")
		data, err := os.ReadFile(filepath.Join(textsDir, entry.Name()))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", filing, err)
			continue
		}
		if err := s.IndexText(ctx, filing, string(data)); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", filing, err)
			continue
		}
		fmt.Fprintf(w, "indexed %s\n", filing)
		indexed++
	}
	return indexed, nil
}

// TextHit is one full-text search result with a highlighted snippet.
type TextHit struct {
	Filing  string
	Company string
	Snippet string
}

// SearchText runs an FTS5 query over the indexed filing texts and returns
// hits ranked by relevance. maxResults zero uses the store default.
func (s *Store) SearchText(ctx context.Context, query string, maxResults int) ([]TextHit, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT filing_text.accession,
			snippet(filing_text, 1, '[', ']', '...', 12),
			f.company
		FROM filing_text
		LEFT JOIN filings f ON f.accession = filing_text.accession
		WHERE filing_text MATCH ?
		ORDER BY rank
		LIMIT ?`,
		query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching filing text: %w", err)
	}
	defer rows.Close()

	var hits []TextHit
	for rows.Next() {
		var (
			hit     TextHit
			company sql.NullString
		)
		if err := rows.Scan(&hit.Filing, &hit.Snippet, &company); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}
		if company.Valid {
			hit.Company = company.String
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}
