// Package config defines service configuration structures and loading hooks.
package config

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Default dataset locations: the public WCA exports mirrored on Dropbox.
const (
	DefaultResultsSource = "https://www.dropbox.com/scl/fi/js90qjcxckuld3gmxi3lg/WCA_export_Results.tsv?rlkey=hdx54ocgglhhlg7bhp47t6ig6&st=dvu8mqhg&dl=1"
	DefaultRanksSource   = "https://www.dropbox.com/scl/fi/69fuhncnag3nelmvwzxb8/WCA_export_RanksSingle.tsv?rlkey=2t2bnehdbi25a40qyc659jxhv&st=on2qn571&dl=1"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ResultsSource and RanksSource are file paths or http(s) URLs of the
	// two exports. A ".gz" suffix means gzip.
	ResultsSource string `koanf:"results_source"`
	RanksSource   string `koanf:"ranks_source"`

	// FetchTimeoutMS bounds each HTTP download.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// CacheTTLSeconds keeps a loaded dataset for reuse; 0 never expires.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// CORSOrigins is a comma separated list of origins allowed to call the
	// API from a browser. "*" allows any origin.
	CORSOrigins string `koanf:"cors_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		ResultsSource:     DefaultResultsSource,
		RanksSource:       DefaultRanksSource,
		FetchTimeoutMS:    60_000,
		CacheTTLSeconds:   3600,
		ShutdownTimeoutMS: 10_000,
		CORSOrigins:       "*",
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// AllowedOrigins splits CORSOrigins, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	return lo.Compact(lo.Map(strings.Split(c.CORSOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	}))
}
