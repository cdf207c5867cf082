// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements HTML-to-text conversion with pluggable backends.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/filings-engine/internal/container"
	"github.com/pdiddy/filings-engine/pkg/types"
)

const (
	// textDir is the subdirectory under the filings base for text output.
	textDir = "text"
	// rawDir is the subdirectory under the filings base for raw documents.
	rawDir = "raw"
)

// Converter transforms a filing document into plain text. Different backends
// (the built-in HTML flattener, containerized pandoc) implement this
// interface.
type Converter interface {
	// Convert reads a document at docPath and returns the plain text content.
	Convert(docPath string) (string, error)
}

// NewConverter selects the conversion backend from configuration. The html
// backend runs in process and needs no external tooling; pandoc requires a
// container runtime with the pandoc image present.
func NewConverter(cfg types.ConversionConfig) (Converter, error) {
	switch cfg.Backend {
	case types.BackendHTML, "":
		return NewHTMLConverter(), nil
	case types.BackendPandoc:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPandocConverter(rt)
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
	}
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of filings processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any filings failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFiling converts a single filing document to plain text, writing the
// result to the text directory under the filing's accession number. If the
// text output already exists and Force is unset, the filing is skipped. The
// text file carries no header or markup: later stages scan it directly.
func ConvertFiling(c Converter, accession, docPath string, cfg types.ConversionConfig, w io.Writer) types.ConversionStatus {
	outDir := filepath.Join(cfg.FilingsDir, textDir)
	txtPath := filepath.Join(outDir, accession+".txt")

	if !cfg.Force {
		if _, err := os.Stat(txtPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", accession)
			return types.ConversionNone
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", accession, err)
		return types.ConversionFailed
	}

	text, err := c.Convert(docPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", accession, err)
		return types.ConversionFailed
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", accession, err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "converted: %s\n", accession)
	return types.ConversionDone
}

// ConvertBatch processes a list of filings through the converter, printing
// per-file status to w and returning a summary.
func ConvertBatch(c Converter, filings []types.Filing, cfg types.ConversionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, f := range filings {
		status := ConvertFiling(c, f.Accession, f.DocPath, cfg, w)
		switch status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertAll scans the raw directory and converts every filing document found
// there. Each subdirectory is named by accession and holds that filing's
// primary document.
func ConvertAll(c Converter, cfg types.ConversionConfig, w io.Writer) (BatchResult, error) {
	base := filepath.Join(cfg.FilingsDir, rawDir)
	entries, err := os.ReadDir(base)
	if err != nil {
		return BatchResult{}, fmt.Errorf("reading raw directory: %w", err)
	}

	var filings []types.Filing
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		docs, err := os.ReadDir(filepath.Join(base, e.Name()))
		if err != nil {
			return BatchResult{}, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		for _, d := range docs {
			if d.IsDir() {
				continue
			}
			filings = append(filings, types.Filing{
				Accession: e.Name(),
				DocPath:   filepath.Join(base, e.Name(), d.Name()),
			})
			// One primary document per accession directory.
			break
		}
	}
	return ConvertBatch(c, filings, cfg, w), nil
}
