package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that talk to EDGAR.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request. EDGAR
	// rejects anonymous clients, so this must identify the operator and
	// include a contact address (e.g. "filings-engine/0.1 (ops@example.com)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts for failed requests (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchConfig holds settings for the registrant search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to return (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableTickers controls whether the ticker-directory backend is used.
	EnableTickers bool `json:"enable_tickers" yaml:"enable_tickers"`

	// EnableFullText controls whether the EDGAR full-text search backend is used.
	EnableFullText bool `json:"enable_full_text" yaml:"enable_full_text"`

	// Forms restricts full-text search hits to these form types (default ["8-K"]).
	Forms []string `json:"forms" yaml:"forms"`
}

// AcquisitionConfig holds settings for the filing acquisition stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	// EDGAR publishes a ten-requests-per-second ceiling; one per second
	// keeps batch runs well inside it.
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// FilingsDir is the base directory for filings (contains raw/, metadata/, text/).
	FilingsDir string `json:"filings_dir" yaml:"filings_dir"`

	// Forms lists the form types to acquire (default ["8-K", "8-K/A"]).
	Forms []string `json:"forms" yaml:"forms"`

	// Limit is the maximum number of filings to download per company (default 10).
	Limit int `json:"limit" yaml:"limit"`

	// From and To bound the filing date range (inclusive); zero means unbounded.
	From time.Time `json:"from,omitempty" yaml:"from,omitempty"`
	To   time.Time `json:"to,omitempty" yaml:"to,omitempty"`
}

// ConversionBackend identifies the HTML-to-text conversion tool.
type ConversionBackend string

const (
	BackendHTML   ConversionBackend = "html"
	BackendPandoc ConversionBackend = "pandoc"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the conversion tool: html (built-in) or pandoc (containerized).
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// FilingsDir is the base directory for filings (contains raw/, metadata/, text/).
	FilingsDir string `json:"filings_dir" yaml:"filings_dir"`

	// Force reconverts documents even when the text output already exists.
	Force bool `json:"force" yaml:"force"`
}

// ExtractionConfig holds settings for the EPS extraction stage.
type ExtractionConfig struct {
	// FilingsDir is the base directory for filings (contains text/).
	FilingsDir string `json:"filings_dir" yaml:"filings_dir"`
}

// StoreConfig holds settings for the filings database.
type StoreConfig struct {
	// DBPath is the SQLite database file path (default "db/filings.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of text-search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ReportFormat selects the report output format.
type ReportFormat string

const (
	ReportCSV   ReportFormat = "csv"
	ReportTable ReportFormat = "table"
	ReportJSON  ReportFormat = "json"
	ReportYAML  ReportFormat = "yaml"
)

// ReportConfig holds settings for the report stage.
type ReportConfig struct {
	// OutputPath is the report destination file (default "output.csv").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Format selects the report rendering: csv, table, json, or yaml.
	Format ReportFormat `json:"format" yaml:"format"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Search      SearchConfig      `json:"search" yaml:"search"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Conversion  ConversionConfig  `json:"conversion" yaml:"conversion"`
	Extraction  ExtractionConfig  `json:"extraction" yaml:"extraction"`
	Store       StoreConfig       `json:"store" yaml:"store"`
	Report      ReportConfig      `json:"report" yaml:"report"`
}
