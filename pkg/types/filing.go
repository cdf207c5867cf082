// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the state of HTML-to-text conversion for a filing.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Filing holds metadata and file paths for an acquired SEC filing.
type Filing struct {
	// Accession is the EDGAR accession number with dashes
	// (e.g. "0000320193-23-000077"), unique per filing.
	Accession string `json:"accession" yaml:"accession"`

	// CIK is the registrant's Central Index Key, zero-padded to ten digits.
	CIK string `json:"cik" yaml:"cik"`

	// Ticker is the registrant's exchange ticker, when known.
	Ticker string `json:"ticker,omitempty" yaml:"ticker,omitempty"`

	// Company is the registrant name as reported by EDGAR.
	Company string `json:"company" yaml:"company"`

	// Form is the filing form type (e.g. "8-K", "8-K/A").
	Form string `json:"form" yaml:"form"`

	// Filed is the date the filing was accepted by EDGAR.
	Filed time.Time `json:"filed" yaml:"filed"`

	// ReportDate is the period-of-report date, when present.
	ReportDate time.Time `json:"report_date,omitempty" yaml:"report_date,omitempty"`

	// SourceURL is the EDGAR archive URL the primary document was fetched from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// DocPath is the local filesystem path to the downloaded primary document.
	DocPath string `json:"doc_path" yaml:"doc_path"`

	// PrimaryDocument is the primary document filename inside the filing
	// (e.g. "aapl-20230803.htm").
	PrimaryDocument string `json:"primary_document" yaml:"primary_document"`

	// Size is the primary document size in bytes as reported by EDGAR.
	Size int64 `json:"size,omitempty" yaml:"size,omitempty"`

	// Retrieved is the time the document was downloaded.
	Retrieved time.Time `json:"retrieved" yaml:"retrieved"`

	// ConversionStatus tracks whether the document has been converted to plain text.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`
}
