// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package edgar is a minimal client for the SEC EDGAR data APIs: the ticker
// directory, the per-company submissions feed, and the filing archives.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/filings-engine/internal/httputil"
	"github.com/pdiddy/filings-engine/pkg/types"
)

// TickerDirectoryBase is the SEC's ticker-to-CIK directory. Declared as a
// var so tests can substitute an httptest server.
var TickerDirectoryBase = "https://www.sec.gov/files/company_tickers.json"

// SubmissionsBase is the per-company submissions endpoint. The %s slot takes
// a ten-digit zero-padded CIK. Declared as a var so tests can substitute an
// httptest server.
var SubmissionsBase = "https://data.sec.gov/submissions/CIK%s.json"

// Client calls the SEC EDGAR data APIs. EDGAR rejects requests without a
// User-Agent identifying the operator, so the configured value is sent with
// every request.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int
}

// NewClient builds a Client from shared HTTP settings.
func NewClient(cfg types.HTTPConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

// TickerEntry is one row of the SEC ticker directory.
type TickerEntry struct {
	CIK    string `json:"cik"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// TickerDirectory fetches the full SEC ticker directory. CIKs are returned
// zero-padded to ten digits.
func (c *Client) TickerDirectory(ctx context.Context) ([]TickerEntry, error) {
	resp, err := c.getJSON(ctx, TickerDirectoryBase)
	if err != nil {
		return nil, fmt.Errorf("ticker directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticker directory returned HTTP %d", resp.StatusCode)
	}

	// The directory is keyed by row index: {"0": {"cik_str": ..., ...}, ...}.
	var raw map[string]tickerDirectoryRow
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing ticker directory: %w", err)
	}

	entries := make([]TickerEntry, 0, len(raw))
	for _, row := range raw {
		entries = append(entries, TickerEntry{
			CIK:    fmt.Sprintf("%010d", row.CIK),
			Ticker: row.Ticker,
			Title:  row.Title,
		})
	}
	return entries, nil
}

// LookupTicker resolves a ticker symbol to its directory entry. The match is
// case-insensitive.
func (c *Client) LookupTicker(ctx context.Context, ticker string) (TickerEntry, error) {
	entries, err := c.TickerDirectory(ctx)
	if err != nil {
		return TickerEntry{}, err
	}

	want := strings.ToUpper(strings.TrimSpace(ticker))
	for _, e := range entries {
		if strings.ToUpper(e.Ticker) == want {
			return e, nil
		}
	}
	return TickerEntry{}, fmt.Errorf("ticker %q not found in the SEC directory", ticker)
}

// Submissions fetches the submissions feed for one company. The cik argument
// may be padded or unpadded.
func (c *Client) Submissions(ctx context.Context, cik string) (*CompanySubmissions, error) {
	resp, err := c.getJSON(ctx, fmt.Sprintf(SubmissionsBase, PadCIK(cik)))
	if err != nil {
		return nil, fmt.Errorf("submissions for CIK %s: %w", cik, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no submissions for CIK %s (HTTP 404)", cik)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("submissions endpoint returned HTTP %d", resp.StatusCode)
	}

	var sub CompanySubmissions
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("parsing submissions response: %w", err)
	}
	return &sub, nil
}

// Fetch issues a GET against an archive URL with the mandatory EDGAR headers
// and retry handling. The caller owns the response body.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
}

// getJSON issues a GET with the mandatory EDGAR headers and retry handling.
func (c *Client) getJSON(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	return httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
}

// EDGAR API JSON structures.
type tickerDirectoryRow struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// CompanySubmissions is the per-company submissions feed. Filing attributes
// arrive as parallel arrays under filings.recent; RecentFilings denormalizes
// them.
type CompanySubmissions struct {
	CIK     string   `json:"cik"`
	Name    string   `json:"name"`
	Tickers []string `json:"tickers"`
	Filings struct {
		Recent recentFilings `json:"recent"`
	} `json:"filings"`
}

type recentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
	Size            []int64  `json:"size"`
}
