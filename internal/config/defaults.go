package config

import "time"

// Default values for optional configuration fields.
const (
	SourceParquet   = "parquet"
	SourceTimescale = "timescale"
	SourceAPI       = "api"

	DefaultSource          = SourceParquet
	DefaultDataPath        = "data/all_trades.parquet"
	DefaultBatchSize       = 4096
	DefaultRestURL         = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultAPITimeout      = 30 * time.Second
	DefaultAPIRetries      = 3
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
	DefaultStartDate       = "2025-01-01"
	DefaultTimezone        = "America/New_York"
	DefaultMinMarketTrades = 100_000
	DefaultMinVolumeShare  = 0.02
	DefaultHighlightHour   = 4
	DefaultOutputDir       = "charts"
	DefaultWidth           = 1500
	DefaultHeight          = 900
	DefaultDPI             = 150
)

// DefaultCharts is the run order used when no charts are configured.
var DefaultCharts = []string{
	"repetitive_by_market",
	"btc_size_distribution",
	"hourly_pattern",
	"monthly_trend",
	"timing_distribution",
	"volume_share",
	"sports_vs_crypto",
}

func (c *Config) applyDefaults() {
	// Data defaults
	if c.Data.Source == "" {
		c.Data.Source = DefaultSource
	}
	if c.Data.Source == SourceParquet && c.Data.Path == "" {
		c.Data.Path = DefaultDataPath
	}
	if c.Data.BatchSize == 0 {
		c.Data.BatchSize = DefaultBatchSize
	}
	applyDBDefaults(&c.Data.Timescale)
	applyDBDefaults(&c.Data.Postgres)
	if c.Data.API.RestURL == "" {
		c.Data.API.RestURL = DefaultRestURL
	}
	if c.Data.API.Timeout == 0 {
		c.Data.API.Timeout = DefaultAPITimeout
	}
	if c.Data.API.MaxRetries == 0 {
		c.Data.API.MaxRetries = DefaultAPIRetries
	}

	// Analysis defaults
	if c.Analysis.StartDate == "" {
		c.Analysis.StartDate = DefaultStartDate
	}
	if c.Analysis.Timezone == "" {
		c.Analysis.Timezone = DefaultTimezone
	}
	if c.Analysis.MinMarketTrades == 0 {
		c.Analysis.MinMarketTrades = DefaultMinMarketTrades
	}
	if c.Analysis.MinVolumeShare == 0 {
		c.Analysis.MinVolumeShare = DefaultMinVolumeShare
	}
	if c.Analysis.HighlightHour == nil {
		h := DefaultHighlightHour
		c.Analysis.HighlightHour = &h
	}

	// Output defaults
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.Width == 0 {
		c.Output.Width = DefaultWidth
	}
	if c.Output.Height == 0 {
		c.Output.Height = DefaultHeight
	}
	if c.Output.DPI == 0 {
		c.Output.DPI = DefaultDPI
	}

	if len(c.Charts) == 0 {
		c.Charts = append([]string(nil), DefaultCharts...)
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
