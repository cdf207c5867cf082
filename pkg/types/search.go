// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the filings-engine pipeline.
package types

import "time"

// SearchResult represents a registrant or filing returned by a search backend.
type SearchResult struct {
	// CIK is the registrant's Central Index Key, zero-padded to ten digits.
	CIK string `json:"cik" yaml:"cik"`

	// Ticker is the registrant's exchange ticker, when the source knows it.
	Ticker string `json:"ticker,omitempty" yaml:"ticker,omitempty"`

	// Company is the registrant name.
	Company string `json:"company" yaml:"company"`

	// Accession identifies a specific filing hit; empty for registrant-level results.
	Accession string `json:"accession,omitempty" yaml:"accession,omitempty"`

	// Form is the filing form type for filing hits (e.g. "8-K").
	Form string `json:"form,omitempty" yaml:"form,omitempty"`

	// Filed is the filing date for filing hits.
	Filed time.Time `json:"filed,omitempty" yaml:"filed,omitempty"`

	// Source identifies which backend found this result (e.g. "tickers", "fulltext").
	Source string `json:"source" yaml:"source"`

	// RelevanceScore is a value between 0.0 and 1.0 indicating match quality.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}
