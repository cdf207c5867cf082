package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{
		DBPath:     filepath.Join(t.TempDir(), "db", "filings.db"),
		MaxResults: 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleFiling(accession string) types.Filing {
	return types.Filing{
		Accession:        accession,
		CIK:              "0000320193",
		Ticker:           "AAPL",
		Company:          "Apple Inc.",
		Form:             "8-K",
		Filed:            time.Date(2023, 8, 3, 0, 0, 0, 0, time.UTC),
		SourceURL:        "https://www.sec.gov/Archives/edgar/data/320193/000032019323000077/aapl-20230803.htm",
		DocPath:          "filings/raw/" + accession + "/aapl-20230803.htm",
		ConversionStatus: types.ConversionDone,
	}
}

// --- schema tests ---

func TestOpenCreatesSchema(t *testing.T) {
	s := testStore(t)

	tables := []string{"filings", "observations", "resolved", "filing_text"}
	for _, table := range tables {
		var count int
		err := s.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestOpenCreatesDBDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "db", "filings.db")
	s, err := Open(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// The driver creates the file lazily; force a write.
	if err := s.UpsertFiling(context.Background(), sampleFiling("0000320193-23-000077")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(types.StoreConfig{}); err == nil {
		t.Fatal("expected error for empty database path")
	}
}

// --- filing tests ---

func TestUpsertFiling(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	f := sampleFiling("0000320193-23-000077")
	if err := s.UpsertFiling(ctx, f); err != nil {
		t.Fatal(err)
	}

	var company, filed, status string
	err := s.db.QueryRow(
		`SELECT company, filed, conversion_status FROM filings WHERE accession = ?`, f.Accession,
	).Scan(&company, &filed, &status)
	if err != nil {
		t.Fatal(err)
	}
	if company != "Apple Inc." {
		t.Errorf("company = %q", company)
	}
	if filed != "2023-08-03" {
		t.Errorf("filed = %q, want 2023-08-03", filed)
	}
	if status != string(types.ConversionDone) {
		t.Errorf("conversion_status = %q", status)
	}

	// Upserting again with changed fields updates in place.
	f.Company = "Apple Inc. (amended)"
	if err := s.UpsertFiling(ctx, f); err != nil {
		t.Fatal(err)
	}
	var count int
	if err := s.db.QueryRow(`SELECT count(*) FROM filings`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("filings count = %d, want 1", count)
	}
	if err := s.db.QueryRow(
		`SELECT company FROM filings WHERE accession = ?`, f.Accession,
	).Scan(&company); err != nil {
		t.Fatal(err)
	}
	if company != "Apple Inc. (amended)" {
		t.Errorf("company after upsert = %q", company)
	}
}

// --- observation tests ---

func TestAddObservationsPreservesOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	in := []types.Observation{
		{Filing: "f1", Value: 1.50},
		{Filing: "f2", Value: -0.40},
		{Filing: "f1", Value: -0.10},
	}
	if err := s.AddObservations(ctx, in); err != nil {
		t.Fatal(err)
	}

	out, err := s.Observations(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d observations, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("observation %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestAddObservationCreatesFilingStub(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.AddObservation(ctx, "ad-hoc-filing", 2.10); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM filings WHERE accession = ?`, "ad-hoc-filing",
	).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Error("expected a stub filing row for the observed id")
	}
}

// --- rebuild tests ---

func TestRebuildFoldOrder(t *testing.T) {
	tests := []struct {
		name string
		obs  []types.Observation
		want float64
	}{
		{
			name: "negative after positive wins on magnitude",
			obs: []types.Observation{
				{Filing: "f1", Value: 1.50},
				{Filing: "f1", Value: -0.10},
			},
			want: -0.10,
		},
		{
			name: "positive after negative wins outright",
			obs: []types.Observation{
				{Filing: "f1", Value: -0.10},
				{Filing: "f1", Value: 1.50},
			},
			want: 1.50,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			ctx := context.Background()

			if err := s.AddObservations(ctx, tt.obs); err != nil {
				t.Fatal(err)
			}
			n, err := s.Rebuild(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if n != 1 {
				t.Errorf("resolved %d filings, want 1", n)
			}

			resolved, err := s.Resolved(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(resolved) != 1 {
				t.Fatalf("got %d resolved rows, want 1", len(resolved))
			}
			if resolved[0].Value != tt.want {
				t.Errorf("resolved value = %v, want %v", resolved[0].Value, tt.want)
			}
			if resolved[0].Observations != 2 {
				t.Errorf("observation count = %d, want 2", resolved[0].Observations)
			}
		})
	}
}

func TestRebuildReplacesPreviousResolution(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.AddObservation(ctx, "f1", 2.10); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}

	// A later observation changes the outcome on the next rebuild.
	if err := s.AddObservation(ctx, "f1", 1.20); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}

	resolved, err := s.Resolved(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved) != 1 {
		t.Fatalf("got %d resolved rows, want 1", len(resolved))
	}
	if resolved[0].Value != 1.20 {
		t.Errorf("resolved value = %v, want 1.20", resolved[0].Value)
	}
}

func TestResolvedOrdering(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	obs := []types.Observation{
		{Filing: "zeta", Value: 1.00},
		{Filing: "alpha", Value: 2.00},
		{Filing: "mid", Value: 3.00},
	}
	if err := s.AddObservations(ctx, obs); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}

	resolved, err := s.Resolved(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range resolved {
		got = append(got, r.Filing)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("resolved rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("resolved order = %v, want %v", got, want)
		}
	}
}

// --- full-text tests ---

func TestIndexAndSearchText(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.UpsertFiling(ctx, sampleFiling("0000320193-23-000077")); err != nil {
		t.Fatal(err)
	}
	texts := map[string]string{
		"0000320193-23-000077": "Diluted earnings per share of $1.26 for the quarter.",
		"0000789019-23-000012": "The board of directors declared a quarterly dividend.",
	}
	for filing, body := range texts {
		if err := s.IndexText(ctx, filing, body); err != nil {
			t.Fatal(err)
		}
	}

	hits, err := s.SearchText(ctx, "earnings", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Filing != "0000320193-23-000077" {
		t.Errorf("hit filing = %q", hits[0].Filing)
	}
	if hits[0].Company != "Apple Inc." {
		t.Errorf("hit company = %q, want Apple Inc.", hits[0].Company)
	}
	if !strings.Contains(hits[0].Snippet, "[earnings]") {
		t.Errorf("snippet should highlight the match, got %q", hits[0].Snippet)
	}
}

func TestIndexTextReplacesExisting(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.IndexText(ctx, "f1", "first version mentions dividends"); err != nil {
		t.Fatal(err)
	}
	if err := s.IndexText(ctx, "f1", "second version mentions earnings"); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT count(*) FROM filing_text`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("index rows = %d, want 1", count)
	}

	hits, err := s.SearchText(ctx, "dividends", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("stale content still searchable: %v", hits)
	}
}

func TestIndexTexts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	textsDir := t.TempDir()
	files := map[string]string{
		"0000320193-23-000077.txt": "earnings per share of $1.26",
		"0000789019-23-000012.txt": "loss per share of $(0.40)",
		"notes.md":                 "not a converted text",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(textsDir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var buf strings.Builder
	indexed, err := s.IndexTexts(ctx, textsDir, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if indexed != 2 {
		t.Errorf("indexed = %d, want 2", indexed)
	}
	if !strings.Contains(buf.String(), "indexed 0000320193-23-000077") {
		t.Errorf("missing progress line, output: %s", buf.String())
	}

	hits, err := s.SearchText(ctx, "share", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Errorf("got %d hits, want 2", len(hits))
	}
}

func TestSearchTextLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		filing := strings.Repeat("f", i+1)
		if err := s.IndexText(ctx, filing, "quarterly earnings announcement"); err != nil {
			t.Fatal(err)
		}
	}

	hits, err := s.SearchText(ctx, "earnings", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Errorf("got %d hits, want 3", len(hits))
	}
}

// --- stats tests ---

func TestStats(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.UpsertFiling(ctx, sampleFiling("0000320193-23-000077")); err != nil {
		t.Fatal(err)
	}
	obs := []types.Observation{
		{Filing: "0000320193-23-000077", Value: 1.26},
		{Filing: "0000320193-23-000077", Value: 1.27},
	}
	if err := s.AddObservations(ctx, obs); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Rebuild(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.IndexText(ctx, "0000320193-23-000077", "earnings text"); err != nil {
		t.Fatal(err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Filings != 1 {
		t.Errorf("Filings = %d, want 1", st.Filings)
	}
	if st.Observations != 2 {
		t.Errorf("Observations = %d, want 2", st.Observations)
	}
	if st.Resolved != 1 {
		t.Errorf("Resolved = %d, want 1", st.Resolved)
	}
	if st.Indexed != 1 {
		t.Errorf("Indexed = %d, want 1", st.Indexed)
	}
}
