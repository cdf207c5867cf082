// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"strings"

	"github.com/pdiddy/filings-engine/internal/edgar"
	"github.com/pdiddy/filings-engine/pkg/types"
)

// TickerBackend matches the query against the SEC ticker directory
// (ticker symbols and registrant names).
type TickerBackend struct {
	Client *edgar.Client
}

// Name returns the backend identifier.
func (b *TickerBackend) Name() string { return "tickers" }

// Search scans the directory and scores each registrant by match quality.
// Registrant-level hits carry no accession; the acquire stage lists filings.
func (b *TickerBackend) Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.SearchResult, error) {
	entries, err := b.Client.TickerDirectory(ctx)
	if err != nil {
		return nil, err
	}

	var results []types.SearchResult
	for _, e := range entries {
		score := scoreEntry(query.Text, e)
		if score == 0 {
			continue
		}
		results = append(results, types.SearchResult{
			CIK:            e.CIK,
			Ticker:         e.Ticker,
			Company:        e.Title,
			Source:         "tickers",
			RelevanceScore: score,
		})
	}
	return results, nil
}

// scoreEntry rates how well a directory entry matches the query text.
// Exact ticker matches rank highest; name substrings rank lowest.
func scoreEntry(text string, e edgar.TickerEntry) float64 {
	q := strings.ToUpper(strings.TrimSpace(text))
	if q == "" {
		return 0
	}
	ticker := strings.ToUpper(e.Ticker)
	title := strings.ToUpper(e.Title)

	switch {
	case q == ticker:
		return 1.0
	case q == title:
		return 0.95
	case strings.HasPrefix(ticker, q):
		return 0.85
	case titleWordMatch(title, q):
		return 0.75
	case strings.Contains(title, q):
		return 0.6
	}
	return 0
}

// titleWordMatch reports whether every word of the query appears as a whole
// word in the title, in any order.
func titleWordMatch(title, q string) bool {
	words := strings.Fields(title)
	for _, qw := range strings.Fields(q) {
		found := false
		for _, w := range words {
			if strings.Trim(w, ".,") == qw {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
