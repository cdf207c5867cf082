package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filings-engine/internal/extract"
	"github.com/pdiddy/filings-engine/pkg/types"
)

// --- FormatEPS ---

func TestFormatEPS(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{2.10, "2.10"},
		{1.2, "1.20"},
		{0, "0.00"},
		{3, "3.00"},
		{-0.40, "(0.40)"},
		{-1.23, "(1.23)"},
		{-10, "(10.00)"},
		{0.05, "0.05"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatEPS(tt.value); got != tt.want {
				t.Errorf("FormatEPS(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

// --- Rows ---

func TestRowsSorted(t *testing.T) {
	resolved := map[string]float64{
		"c-filing": 1.00,
		"a-filing": -0.40,
		"b-filing": 2.10,
	}
	rows := Rows(resolved)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	wantOrder := []string{"a-filing", "b-filing", "c-filing"}
	for i, want := range wantOrder {
		if rows[i].Filing != want {
			t.Errorf("rows[%d].Filing = %q, want %q", i, rows[i].Filing, want)
		}
	}
}

// --- WriteCSV ---

func TestWriteCSV(t *testing.T) {
	rows := []types.ResolvedEPS{
		{Filing: "f1", Value: 2.10},
		{Filing: "f2", Value: -0.40},
	}
	var buf strings.Builder
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "Filename,EPS\nf1,2.10\nf2,(0.40)\n"
	if buf.String() != want {
		t.Errorf("CSV output = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != "Filename,EPS\n" {
		t.Errorf("empty CSV = %q, want header only", buf.String())
	}
}

// --- WriteTable ---

func TestWriteTable(t *testing.T) {
	rows := []types.ResolvedEPS{
		{Filing: "0000320193-23-000077", Value: 1.26},
		{Filing: "0000789019-23-000015", Value: -0.05},
	}
	var buf strings.Builder
	WriteTable(&buf, rows)

	out := buf.String()
	for _, want := range []string{"Filename", "EPS", "0000320193-23-000077", "1.26", "(0.05)", "2 filings"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTableEmpty(t *testing.T) {
	var buf strings.Builder
	WriteTable(&buf, nil)
	if !strings.Contains(buf.String(), "No resolved figures.") {
		t.Errorf("empty table = %q", buf.String())
	}
}

// --- WriteJSON / WriteYAML ---

func TestWriteJSON(t *testing.T) {
	rows := []types.ResolvedEPS{{Filing: "f1", Value: -0.40, Observations: 2}}
	var buf strings.Builder
	if err := WriteJSON(&buf, rows); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded []types.ResolvedEPS
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("unmarshaling output: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Value != -0.40 || decoded[0].Observations != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteYAML(t *testing.T) {
	rows := []types.ResolvedEPS{{Filing: "f1", Value: 2.10}}
	var buf strings.Builder
	if err := WriteYAML(&buf, rows); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var decoded []types.ResolvedEPS
	if err := yaml.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("unmarshaling output: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Filing != "f1" {
		t.Errorf("decoded = %+v", decoded)
	}
}

// --- Write dispatch ---

func TestWriteUnknownFormat(t *testing.T) {
	var buf strings.Builder
	if err := Write(&buf, nil, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteDefaultsToCSV(t *testing.T) {
	rows := []types.ResolvedEPS{{Filing: "f1", Value: 1.00}}
	var buf strings.Builder
	if err := Write(&buf, rows, ""); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Filename,EPS\n") {
		t.Errorf("default format output = %q, want CSV", buf.String())
	}
}

// --- WriteFile ---

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "output.csv")
	rows := []types.ResolvedEPS{{Filing: "f1", Value: -1.23}}
	if err := WriteFile(path, rows, types.ReportCSV); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Filename,EPS\nf1,(1.23)\n" {
		t.Errorf("file contents = %q", string(data))
	}
}

// --- extraction to report ---

func TestFormattedExtractionScenarios(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "loss formatted with parentheses",
			text: "Diluted EPS was $1.25 per share, compared to a loss per share of $(0.40) last year.",
			want: "(0.40)",
		},
		{
			name: "earnings formatted with two decimals",
			text: "Basic earnings per share of 2.10",
			want: "2.10",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := extract.Extract(tt.text)
			if !ok {
				t.Fatalf("Extract(%q) found nothing", tt.text)
			}
			if got := FormatEPS(v); got != tt.want {
				t.Errorf("FormatEPS(Extract(...)) = %q, want %q", got, tt.want)
			}
		})
	}
}
