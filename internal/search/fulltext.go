// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/filings-engine/internal/edgar"
	"github.com/pdiddy/filings-engine/internal/httputil"
	"github.com/pdiddy/filings-engine/pkg/types"
)

// fullTextBase is the EDGAR full-text search endpoint. Declared as a var so
// tests can substitute an httptest server.
var fullTextBase = "https://efts.sec.gov/LATEST/search-index"

// FullTextBackend queries EDGAR full-text search for filings whose body
// mentions the query phrase.
type FullTextBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *FullTextBackend) Name() string { return "fulltext" }

// Search queries the full-text endpoint and returns filing-level hits.
func (b *FullTextBackend) Search(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.SearchResult, error) {
	forms := query.Forms
	if len(forms) == 0 {
		forms = cfg.Forms
	}

	params := url.Values{}
	params.Set("q", `"`+query.Text+`"`)
	if len(forms) > 0 {
		params.Set("forms", strings.Join(forms, ","))
	}
	if !query.From.IsZero() || !query.To.IsZero() {
		params.Set("dateRange", "custom")
		if !query.From.IsZero() {
			params.Set("startdt", query.From.Format("2006-01-02"))
		}
		if !query.To.IsZero() {
			params.Set("enddt", query.To.Format("2006-01-02"))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullTextBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("full-text search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("full-text search returned HTTP %d", resp.StatusCode)
	}

	var envelope fullTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("parsing full-text response: %w", err)
	}

	total := len(envelope.Hits.Hits)
	var results []types.SearchResult
	for i, hit := range envelope.Hits.Hits {
		src := hit.Source
		if src.Accession == "" {
			continue
		}

		r := types.SearchResult{
			Accession: src.Accession,
			Form:      src.FileType,
			Source:    "fulltext",
		}

		if len(src.CIKs) > 0 {
			r.CIK = edgar.PadCIK(src.CIKs[0])
		}
		if len(src.DisplayNames) > 0 {
			r.Company, r.Ticker = parseDisplayName(src.DisplayNames[0])
		}
		if t, parseErr := time.Parse("2006-01-02", src.FileDate); parseErr == nil {
			r.Filed = t
		}

		// Position-based relevance: the endpoint returns hits best first.
		if total > 1 {
			r.RelevanceScore = 1.0 - float64(i)/float64(total-1)*0.9
		} else {
			r.RelevanceScore = 1.0
		}

		results = append(results, r)
	}
	return results, nil
}

// displayNamePattern splits EDGAR display names of the form
// "Apple Inc.  (AAPL)  (CIK 0000320193)"; the ticker group is optional.
var displayNamePattern = regexp.MustCompile(`^(.*?)\s*(?:\(([A-Z][A-Z0-9.\-]*)\)\s*)?\(CIK\s+\d+\)$`)

// parseDisplayName extracts the company name and ticker from a display name.
func parseDisplayName(s string) (company, ticker string) {
	m := displayNamePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(m[1]), m[2]
}

// EDGAR full-text search JSON structures.
type fullTextResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []fullTextHit `json:"hits"`
	} `json:"hits"`
}

type fullTextHit struct {
	Source fullTextSource `json:"_source"`
}

type fullTextSource struct {
	CIKs         []string `json:"ciks"`
	DisplayNames []string `json:"display_names"`
	FileType     string   `json:"file_type"`
	FileDate     string   `json:"file_date"`
	Accession    string   `json:"adsh"`
}
