// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watchlist loads and validates company watchlist files.
package watchlist

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filings-engine/internal/edgar"
	"github.com/pdiddy/filings-engine/pkg/types"
)

// cikPattern matches bare CIK numbers up to ten digits.
var cikPattern = regexp.MustCompile(`^\d{1,10}$`)

// Load reads a watchlist YAML file.
func Load(path string) (*types.Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watchlist: %w", err)
	}
	var wl types.Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parsing watchlist: %w", err)
	}
	return &wl, nil
}

// Validate checks a watchlist for usability problems and returns one message
// per issue, in entry order. An empty result means the watchlist is clean.
func Validate(wl *types.Watchlist) []string {
	var issues []string
	seenTickers := make(map[string]int)
	seenCIKs := make(map[string]int)

	for i, entry := range wl.Companies {
		ticker := strings.ToUpper(strings.TrimSpace(entry.Ticker))
		cik := strings.TrimSpace(entry.CIK)

		if ticker == "" && cik == "" {
			issues = append(issues, fmt.Sprintf("entry %d (%s): has neither ticker nor CIK", i+1, describe(entry)))
			continue
		}

		if ticker != "" {
			if prev, dup := seenTickers[ticker]; dup {
				issues = append(issues, fmt.Sprintf("entry %d: duplicate ticker %s (first used by entry %d)", i+1, ticker, prev))
			} else {
				seenTickers[ticker] = i + 1
			}
		}

		if cik != "" {
			if !cikPattern.MatchString(cik) {
				issues = append(issues, fmt.Sprintf("entry %d (%s): malformed CIK %q", i+1, describe(entry), cik))
				continue
			}
			padded := edgar.PadCIK(cik)
			if prev, dup := seenCIKs[padded]; dup {
				issues = append(issues, fmt.Sprintf("entry %d: duplicate CIK %s (first used by entry %d)", i+1, padded, prev))
			} else {
				seenCIKs[padded] = i + 1
			}
		}
	}
	return issues
}

// Identifiers returns one acquisition identifier per entry, preferring the
// ticker and falling back to the CIK. Entries with neither are dropped.
func Identifiers(wl *types.Watchlist) []string {
	var ids []string
	for _, entry := range wl.Companies {
		switch {
		case strings.TrimSpace(entry.Ticker) != "":
			ids = append(ids, strings.TrimSpace(entry.Ticker))
		case strings.TrimSpace(entry.CIK) != "":
			ids = append(ids, strings.TrimSpace(entry.CIK))
		}
	}
	return ids
}

// describe returns the most recognizable label an entry offers.
func describe(entry types.WatchEntry) string {
	switch {
	case entry.Name != "":
		return entry.Name
	case entry.Ticker != "":
		return entry.Ticker
	case entry.CIK != "":
		return "CIK " + entry.CIK
	default:
		return "unnamed"
	}
}
