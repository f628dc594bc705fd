package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host
)

// Config is the root configuration for a chart run.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Charts   []string       `yaml:"charts"` // Chart names in run order
}

// DataConfig selects where trades are read from.
type DataConfig struct {
	Source    string    `yaml:"source"`     // "parquet", "timescale" or "api"
	Path      string    `yaml:"path"`       // Parquet file path
	BatchSize int       `yaml:"batch_size"` // Rows per parquet read / database fetch / API page
	Timescale DBConfig  `yaml:"timescale"`  // Gatherer TimescaleDB with trades (source: timescale)
	Postgres  DBConfig  `yaml:"postgres"`   // Gatherer PostgreSQL with markets and events (source: timescale)
	API       APIConfig `yaml:"api"`        // Kalshi REST API (source: api)
}

// APIConfig holds Kalshi REST API settings.
type APIConfig struct {
	RestURL        string        `yaml:"rest_url"`
	APIKey         string        `yaml:"api_key"`          // API key ID (for KALSHI-ACCESS-KEY header), optional
	PrivateKeyPath string        `yaml:"private_key_path"` // Path to RSA private key PEM file
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// AnalysisConfig holds query parameters.
type AnalysisConfig struct {
	StartDate       string  `yaml:"start_date"`        // Inclusive, YYYY-MM-DD in Timezone
	Timezone        string  `yaml:"timezone"`          // IANA zone for hour/month bucketing
	MinMarketTrades int64   `yaml:"min_market_trades"` // Markets below this are left off the by-market chart
	MinVolumeShare  float64 `yaml:"min_volume_share"`  // Fraction below which markets merge into Other
	HighlightHour   *int    `yaml:"highlight_hour"`    // Hour annotated on the hourly chart
}

// OutputConfig holds image settings.
type OutputConfig struct {
	Dir    string  `yaml:"dir"`
	Width  int     `yaml:"width"`  // Pixels
	Height int     `yaml:"height"` // Pixels
	DPI    float64 `yaml:"dpi"`
}

// Location loads the analysis time zone.
func (a AnalysisConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

// Start returns the first instant of StartDate in the analysis time zone.
func (a AnalysisConfig) Start() (time.Time, error) {
	loc, err := a.Location()
	if err != nil {
		return time.Time{}, err
	}
	start, err := time.ParseInLocation("2006-01-02", a.StartDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start_date %q: %w", a.StartDate, err)
	}
	return start, nil
}

// Hour returns the highlighted hour.
func (a AnalysisConfig) Hour() int {
	if a.HighlightHour == nil {
		return DefaultHighlightHour
	}
	return *a.HighlightHour
}
