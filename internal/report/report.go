// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders resolved EPS figures as CSV, an aligned table,
// JSON, or YAML.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// FormatEPS renders one EPS figure for reporting. Non-negative figures get
// two fixed decimals; negative figures use accounting parenthesis notation
// over the absolute value: -1.23 renders as "(1.23)". Downstream consumers
// parse this exact form, so the rendering must not drift.
func FormatEPS(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("(%.2f)", math.Abs(v))
}

// Rows converts a resolved mapping into report rows sorted by filing
// identifier, so report output is stable run to run.
func Rows(resolved map[string]float64) []types.ResolvedEPS {
	rows := make([]types.ResolvedEPS, 0, len(resolved))
	for filing, value := range resolved {
		rows = append(rows, types.ResolvedEPS{Filing: filing, Value: value})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Filing < rows[j].Filing
	})
	return rows
}

// WriteCSV writes rows as a two-column CSV with a Filename,EPS header.
func WriteCSV(w io.Writer, rows []types.ResolvedEPS) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Filename", "EPS"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Filing, FormatEPS(row.Value)}); err != nil {
			return fmt.Errorf("writing row %s: %w", row.Filing, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes rows as a human-readable aligned table.
func WriteTable(w io.Writer, rows []types.ResolvedEPS) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No resolved figures.")
		return
	}

	fmt.Fprintf(w, "%-44s  %10s\n", "Filename", "EPS")
	fmt.Fprintln(w, strings.Repeat("-", 56))
	for _, row := range rows {
		fmt.Fprintf(w, "%-44s  %10s\n", row.Filing, FormatEPS(row.Value))
	}
	fmt.Fprintf(w, "\n%d filings\n", len(rows))
}

// WriteJSON writes rows as indented JSON.
func WriteJSON(w io.Writer, rows []types.ResolvedEPS) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteYAML writes rows as YAML.
func WriteYAML(w io.Writer, rows []types.ResolvedEPS) error {
	data, err := yaml.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Write renders rows to w in the requested format.
func Write(w io.Writer, rows []types.ResolvedEPS, format types.ReportFormat) error {
	switch format {
	case types.ReportCSV, "":
		return WriteCSV(w, rows)
	case types.ReportTable:
		WriteTable(w, rows)
		return nil
	case types.ReportJSON:
		return WriteJSON(w, rows)
	case types.ReportYAML:
		return WriteYAML(w, rows)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile renders rows to path in the requested format, creating parent
// directories as needed.
func WriteFile(path string, rows []types.ResolvedEPS, format types.ReportFormat) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := Write(&buf, rows, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
