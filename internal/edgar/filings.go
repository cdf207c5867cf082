// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edgar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/filings-engine/pkg/types"
)

// ArchivesBase is the EDGAR filing archive root. Declared as a var so tests
// can substitute an httptest server.
var ArchivesBase = "https://www.sec.gov/Archives/edgar/data"

// PadCIK zero-pads a CIK to the ten digits the submissions endpoint expects.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimLeft(strings.TrimSpace(cik), "0"))
}

// DocumentURL builds the archive URL for one document of one filing. Archive
// paths use the unpadded CIK and the accession number without dashes.
func DocumentURL(cik, accession, document string) string {
	short := strings.TrimLeft(cik, "0")
	if short == "" {
		short = "0"
	}
	return fmt.Sprintf("%s/%s/%s/%s", ArchivesBase, short, strings.ReplaceAll(accession, "-", ""), document)
}

// FilingFilter restricts the filings returned by RecentFilings. Zero values
// leave the corresponding dimension unrestricted.
type FilingFilter struct {
	// Forms keeps only these form types (exact match, e.g. "8-K").
	Forms []string

	// Limit caps the number of filings returned.
	Limit int

	// From and To bound the filing date (inclusive).
	From time.Time
	To   time.Time
}

// RecentFilings denormalizes the parallel arrays of the submissions feed into
// Filing values, newest first, applying the filter. The feed itself is
// ordered newest first, so the order carries through.
func (s *CompanySubmissions) RecentFilings(filter FilingFilter) []types.Filing {
	recent := s.Filings.Recent

	formSet := make(map[string]bool, len(filter.Forms))
	for _, f := range filter.Forms {
		formSet[f] = true
	}

	ticker := ""
	if len(s.Tickers) > 0 {
		ticker = s.Tickers[0]
	}

	var filings []types.Filing
	for i := range recent.AccessionNumber {
		if len(formSet) > 0 && !formSet[recent.Form[i]] {
			continue
		}

		filed, _ := time.Parse("2006-01-02", recent.FilingDate[i])
		if !filter.From.IsZero() && filed.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && filed.After(filter.To) {
			continue
		}

		var reported time.Time
		if recent.ReportDate[i] != "" {
			reported, _ = time.Parse("2006-01-02", recent.ReportDate[i])
		}

		filings = append(filings, types.Filing{
			Accession:       recent.AccessionNumber[i],
			CIK:             PadCIK(s.CIK),
			Ticker:          ticker,
			Company:         s.Name,
			Form:            recent.Form[i],
			Filed:           filed,
			ReportDate:      reported,
			PrimaryDocument: recent.PrimaryDocument[i],
			Size:            recent.Size[i],
			SourceURL:       DocumentURL(s.CIK, recent.AccessionNumber[i], recent.PrimaryDocument[i]),
		})

		if filter.Limit > 0 && len(filings) >= filter.Limit {
			break
		}
	}
	return filings
}
