// Package extract pulls earnings-per-share figures out of converted filing text.
package extract

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/filings-engine/pkg/types"
)

const textDir = "text"

// Extract returns the single EPS figure for one document's plain text, or
// false when the text contains no recognizable EPS mention. Absence is a
// normal outcome, not an error.
//
// Every pattern hit becomes a candidate; candidates are partitioned by sign
// and reduced to the value closest to zero. Spurious large numbers (share
// counts, dollar totals) are pushed out by the reduction: magnitude, not
// sign, is the plausibility signal. When the smallest non-negative and the
// closest-to-zero negative tie on magnitude, the negative wins.
func Extract(text string) (float64, bool) {
	var nonNegative, negative []float64
	for _, v := range candidates(text) {
		if v >= 0 {
			nonNegative = append(nonNegative, v)
		} else {
			negative = append(negative, v)
		}
	}

	switch {
	case len(nonNegative) > 0 && len(negative) > 0:
		p := minOf(nonNegative)
		n := maxOf(negative)
		if math.Abs(p) < math.Abs(n) {
			return p, true
		}
		return n, true
	case len(nonNegative) > 0:
		return minOf(nonNegative), true
	case len(negative) > 0:
		return maxOf(negative), true
	}
	return 0, false
}

// ExtractFile runs Extract over one converted text file. The boolean follows
// Extract's contract; an error means the file itself could not be read.
func ExtractFile(path string) (float64, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false, fmt.Errorf("reading text %s: %w", path, err)
	}
	v, ok := Extract(string(data))
	return v, ok, nil
}

// BatchSummary holds counts from a batch extraction run.
type BatchSummary struct {
	Extracted int
	NoMatch   int
	Failed    int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.NoMatch + s.Failed
}

// HasFailures reports whether any documents failed to read.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ExtractAll runs Extract over every converted text in filingsDir/text/ and
// returns one observation per document that yielded a figure. Documents are
// processed in lexicographic filename order so the observation sequence, and
// therefore downstream resolution, is reproducible run to run. Documents
// with no recognizable figure are reported and skipped; they are a valid
// outcome, not a failure.
func ExtractAll(cfg types.ExtractionConfig, w io.Writer) ([]types.Observation, BatchSummary, error) {
	dir := filepath.Join(cfg.FilingsDir, textDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, BatchSummary{}, fmt.Errorf("reading text directory %s: %w", dir, err)
	}

	var observations []types.Observation
	var summary BatchSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".txt")
		path := filepath.Join(dir, entry.Name())

		v, ok, err := ExtractFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", id, err)
			summary.Failed++
			continue
		}
		if !ok {
			fmt.Fprintf(w, "no match %s\n", id)
			summary.NoMatch++
			continue
		}

		fmt.Fprintf(w, "extracted %s: %.2f\n", id, v)
		observations = append(observations, types.Observation{Filing: id, Value: v})
		summary.Extracted++
	}

	return observations, summary, nil
}

// minOf returns the smallest value in a non-empty slice.
func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// maxOf returns the largest value in a non-empty slice.
func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
