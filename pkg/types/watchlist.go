// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WatchEntry describes one tracked company in a watchlist file.
type WatchEntry struct {
	// Ticker is the company's exchange ticker (e.g. "AAPL"). At least one
	// of Ticker or CIK must be set.
	Ticker string `json:"ticker,omitempty" yaml:"ticker,omitempty"`

	// CIK is the company's Central Index Key, with or without zero padding.
	CIK string `json:"cik,omitempty" yaml:"cik,omitempty"`

	// Name is a display name for the company (optional, informational).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Notes is free-form operator commentary (optional).
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Watchlist holds the set of companies whose filings the pipeline tracks,
// loaded from watchlist.yaml.
type Watchlist struct {
	// Companies lists the tracked companies in file order.
	Companies []WatchEntry `json:"companies" yaml:"companies"`
}
