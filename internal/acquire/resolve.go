// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/filings-engine/internal/edgar"
)

// IdentifierType classifies an input identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeTicker
	TypeCIK
	TypeAccession
)

func (t IdentifierType) String() string {
	switch t {
	case TypeTicker:
		return "ticker"
	case TypeCIK:
		return "cik"
	case TypeAccession:
		return "accession"
	default:
		return "unknown"
	}
}

// tickerPattern matches exchange tickers: "AAPL", "brk.b", "BF-B".
var tickerPattern = regexp.MustCompile(`^[A-Za-z]{1,5}(?:[.-][A-Za-z]{1,2})?$`)

// cikPattern matches bare CIK numbers up to ten digits: "320193", "0000320193".
var cikPattern = regexp.MustCompile(`^\d{1,10}$`)

// accessionPattern matches accession numbers with or without dashes:
// "0000320193-23-000077", "000032019323000077".
var accessionPattern = regexp.MustCompile(`^(\d{10})-?(\d{2})-?(\d{6})$`)

// Classify determines the identifier type and returns the normalized form:
// tickers uppercased with dots folded to dashes (the SEC directory spelling),
// CIKs zero-padded to ten digits, accession numbers in dashed form.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)

	if m := accessionPattern.FindStringSubmatch(identifier); m != nil {
		return TypeAccession, fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}

	if cikPattern.MatchString(identifier) {
		return TypeCIK, edgar.PadCIK(identifier)
	}

	if tickerPattern.MatchString(identifier) {
		return TypeTicker, strings.ReplaceAll(strings.ToUpper(identifier), ".", "-")
	}

	return TypeUnknown, identifier
}

// AccessionCIK returns the filer CIK embedded in a dashed accession number.
// The first segment of an accession is the CIK of the account that filed it,
// which for operating companies is the registrant itself.
func AccessionCIK(accession string) string {
	return strings.SplitN(accession, "-", 2)[0]
}
