// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// QueryFile is the on-disk representation of a search query and its results.
// A search can be saved to a file and reloaded later without re-querying.
type QueryFile struct {
	Query   QueryParams          `yaml:"query"`
	Config  QueryFileConfig      `yaml:"config"`
	Results []types.SearchResult `yaml:"results"`
	Summary QuerySummary         `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Text     string   `yaml:"text,omitempty"`
	Forms    []string `yaml:"forms,omitempty"`
	DateFrom string   `yaml:"date_from,omitempty"`
	DateTo   string   `yaml:"date_to,omitempty"`
}

// QueryFileConfig stores the search configuration that produced the results.
type QueryFileConfig struct {
	MaxResults int `yaml:"max_results"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total            int       `yaml:"total"`
	DuplicatesMerged int       `yaml:"duplicates_merged"`
	BackendErrors    []string  `yaml:"backend_errors,omitempty"`
	Timestamp        time.Time `yaml:"timestamp"`
}

const dateFmt = "2006-01-02"

// WriteQueryFile saves query parameters and results to a YAML file.
func WriteQueryFile(path string, query Query, cfg types.SearchConfig, out SearchOutput) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:  query.Text,
			Forms: query.Forms,
		},
		Config: QueryFileConfig{
			MaxResults: cfg.MaxResults,
		},
		Results: out.Results,
		Summary: QuerySummary{
			Total:            len(out.Results),
			DuplicatesMerged: out.DupsRemoved,
			BackendErrors:    out.BackendErrors,
			Timestamp:        time.Now(),
		},
	}

	if !query.From.IsZero() {
		qf.Query.DateFrom = query.From.Format(dateFmt)
	}
	if !query.To.IsZero() {
		qf.Query.DateTo = query.To.Format(dateFmt)
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query struct.
func (p QueryParams) ToQuery() (Query, error) {
	q := Query{
		Text:  p.Text,
		Forms: p.Forms,
	}
	if p.DateFrom != "" {
		t, err := time.Parse(dateFmt, p.DateFrom)
		if err != nil {
			return q, fmt.Errorf("invalid date_from %q: %w", p.DateFrom, err)
		}
		q.From = t
	}
	if p.DateTo != "" {
		t, err := time.Parse(dateFmt, p.DateTo)
		if err != nil {
			return q, fmt.Errorf("invalid date_to %q: %w", p.DateTo, err)
		}
		q.To = t
	}
	return q, nil
}
