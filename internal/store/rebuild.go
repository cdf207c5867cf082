// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/filings-engine/internal/resolve"
	"github.com/pdiddy/filings-engine/pkg/types"
)

// Rebuild replays every stored observation through the resolver fold, in
// insertion order, and replaces the resolved table with the outcome. It
// returns the number of filings resolved.
//
// Replay rather than incremental update keeps the fold order-exact: the
// resolver is order-sensitive, and the observation ids record that order.
func (s *Store) Rebuild(ctx context.Context) (int, error) {
	observations, err := s.Observations(ctx)
	if err != nil {
		return 0, err
	}

	resolved := resolve.Resolve(observations)

	counts := make(map[string]int, len(resolved))
	for _, obs := range observations {
		counts[obs.Filing]++
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resolved`); err != nil {
		return 0, fmt.Errorf("clearing resolved table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO resolved (accession, value, observations, resolved_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for filing, value := range resolved {
		if _, err := stmt.ExecContext(ctx, filing, value, counts[filing], now); err != nil {
			return 0, fmt.Errorf("inserting resolved value for %s: %w", filing, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing resolved table: %w", err)
	}
	return len(resolved), nil
}

// Resolved returns the resolved EPS figures ordered by filing id, ready for
// report rendering.
func (s *Store) Resolved(ctx context.Context) ([]types.ResolvedEPS, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT accession, value, observations FROM resolved ORDER BY accession`)
	if err != nil {
		return nil, fmt.Errorf("querying resolved values: %w", err)
	}
	defer rows.Close()

	var results []types.ResolvedEPS
	for rows.Next() {
		var r types.ResolvedEPS
		if err := rows.Scan(&r.Filing, &r.Value, &r.Observations); err != nil {
			return nil, fmt.Errorf("scanning resolved row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
