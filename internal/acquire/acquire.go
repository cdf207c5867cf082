// Package acquire downloads filings from the EDGAR archives and creates
// metadata records.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filings-engine/internal/edgar"
	"github.com/pdiddy/filings-engine/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// BatchResult holds the outcome of a batch acquisition run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Filings    []types.Filing
}

// Total returns the total number of filings processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any filings failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ResolveFilings expands one identifier into the filings to acquire. Tickers
// resolve through the SEC directory, CIKs go straight to the submissions
// feed, and an accession number selects that single filing from its filer's
// feed. Form, date, and limit settings apply to ticker and CIK identifiers.
func ResolveFilings(ctx context.Context, client *edgar.Client, identifier string, cfg types.AcquisitionConfig) ([]types.Filing, error) {
	idType, normalized := Classify(identifier)

	var cik string
	switch idType {
	case TypeTicker:
		entry, err := client.LookupTicker(ctx, normalized)
		if err != nil {
			return nil, err
		}
		cik = entry.CIK
	case TypeCIK:
		cik = normalized
	case TypeAccession:
		cik = AccessionCIK(normalized)
	default:
		return nil, fmt.Errorf("unrecognized identifier format: %q", identifier)
	}

	sub, err := client.Submissions(ctx, cik)
	if err != nil {
		return nil, err
	}

	if idType == TypeAccession {
		for _, f := range sub.RecentFilings(edgar.FilingFilter{}) {
			if f.Accession == normalized {
				return []types.Filing{f}, nil
			}
		}
		return nil, fmt.Errorf("accession %s not found in recent submissions for CIK %s", normalized, cik)
	}

	forms := cfg.Forms
	if len(forms) == 0 {
		forms = []string{"8-K"}
	}
	filings := sub.RecentFilings(edgar.FilingFilter{
		Forms: forms,
		Limit: cfg.Limit,
		From:  cfg.From,
		To:    cfg.To,
	})
	if len(filings) == 0 {
		return nil, fmt.Errorf("no matching filings for %s (forms %v)", identifier, forms)
	}
	return filings, nil
}

// AcquireFiling downloads one filing's primary document and writes its
// metadata record. If the document already exists on disk, it skips the
// download. The skipped return value indicates whether the download was
// skipped.
func AcquireFiling(ctx context.Context, client *edgar.Client, filing types.Filing, cfg types.AcquisitionConfig, w io.Writer) (types.Filing, bool, error) {
	// Some primary documents are nested (XBRL-rendered forms); store flat.
	docName := filepath.Base(filing.PrimaryDocument)
	docPath := filepath.Join(cfg.FilingsDir, rawDir, filing.Accession, docName)
	metaPath := filepath.Join(cfg.FilingsDir, metadataDir, filing.Accession+".yaml")

	// Skip if the document already exists.
	if _, err := os.Stat(docPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", filing.Accession)
		if prev, readErr := readMetadata(metaPath); readErr == nil {
			return prev, true, nil
		}
		filing.DocPath = docPath
		return filing, true, nil
	}

	for _, dir := range []string{
		filepath.Join(cfg.FilingsDir, rawDir, filing.Accession),
		filepath.Join(cfg.FilingsDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return filing, false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s (%s %s)\n", filing.Accession, filing.Form, filing.Filed.Format("2006-01-02"))

	if err := downloadFile(ctx, client, filing.SourceURL, docPath); err != nil {
		return filing, false, fmt.Errorf("downloading %s: %w", filing.Accession, err)
	}

	filing.DocPath = docPath
	filing.Retrieved = time.Now().UTC()
	filing.ConversionStatus = types.ConversionNone

	if err := writeMetadata(filing, metaPath); err != nil {
		return filing, false, fmt.Errorf("writing metadata for %s: %w", filing.Accession, err)
	}
	return filing, false, nil
}

// AcquireBatch processes multiple identifiers, printing per-item status and
// returning a summary. It continues after individual failures and applies a
// delay between consecutive downloads.
func AcquireBatch(ctx context.Context, client *edgar.Client, identifiers []string, cfg types.AcquisitionConfig, w io.Writer) BatchResult {
	var result BatchResult
	first := true
	for _, id := range identifiers {
		filings, err := ResolveFilings(ctx, client, id, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			result.Failed++
			continue
		}
		for _, f := range filings {
			if !first && cfg.DownloadDelay > 0 {
				time.Sleep(cfg.DownloadDelay)
			}
			first = false

			acquired, wasSkipped, err := AcquireFiling(ctx, client, f, cfg, w)
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", f.Accession, err)
				result.Failed++
				continue
			}
			if wasSkipped {
				result.Skipped++
			} else {
				result.Downloaded++
			}
			result.Filings = append(result.Filings, acquired)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// downloadFile fetches url to destPath using a temporary file so a partial
// download never lands at the final path.
func downloadFile(ctx context.Context, client *edgar.Client, url, destPath string) error {
	resp, err := client.Fetch(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata writes a Filing record to a YAML file.
func writeMetadata(filing types.Filing, path string) error {
	data, err := yaml.Marshal(filing)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// readMetadata reads a Filing record from a YAML file.
func readMetadata(path string) (types.Filing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Filing{}, err
	}
	var filing types.Filing
	if err := yaml.Unmarshal(data, &filing); err != nil {
		return types.Filing{}, err
	}
	return filing, nil
}
