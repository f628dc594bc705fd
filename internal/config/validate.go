package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	switch c.Data.Source {
	case SourceParquet:
		if c.Data.Path == "" {
			return errors.New("data.path is required for parquet source")
		}
	case SourceTimescale:
		if err := c.Data.Timescale.validate("data.timescale"); err != nil {
			return err
		}
		if err := c.Data.Postgres.validate("data.postgres"); err != nil {
			return err
		}
	case SourceAPI:
		if err := c.Data.API.validate("data.api"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("data.source must be %q, %q or %q, got %q",
			SourceParquet, SourceTimescale, SourceAPI, c.Data.Source)
	}
	if c.Data.BatchSize < 1 {
		return errors.New("data.batch_size must be >= 1")
	}

	if _, err := c.Analysis.Start(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if c.Analysis.MinMarketTrades < 0 {
		return errors.New("analysis.min_market_trades must be >= 0")
	}
	if c.Analysis.MinVolumeShare < 0 || c.Analysis.MinVolumeShare >= 1 {
		return fmt.Errorf("analysis.min_volume_share must be in [0, 1), got %v", c.Analysis.MinVolumeShare)
	}
	if h := c.Analysis.Hour(); h < 0 || h > 23 {
		return fmt.Errorf("analysis.highlight_hour must be between 0 and 23, got %d", h)
	}

	if c.Output.Dir == "" {
		return errors.New("output.dir is required")
	}
	if c.Output.Width < 100 || c.Output.Height < 100 {
		return fmt.Errorf("output size must be at least 100x100, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.Output.DPI <= 0 {
		return errors.New("output.dpi must be > 0")
	}

	seen := make(map[string]bool, len(c.Charts))
	for _, name := range c.Charts {
		if name == "" {
			return errors.New("charts entries must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("chart %q listed more than once", name)
		}
		seen[name] = true
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

func (api *APIConfig) validate(prefix string) error {
	if api.RestURL == "" {
		return fmt.Errorf("%s.rest_url is required", prefix)
	}
	if (api.APIKey == "") != (api.PrivateKeyPath == "") {
		return fmt.Errorf("%s.api_key and %s.private_key_path must be set together", prefix, prefix)
	}
	if api.Timeout <= 0 {
		return fmt.Errorf("%s.timeout must be > 0", prefix)
	}
	if api.MaxRetries < 0 {
		return fmt.Errorf("%s.max_retries must be >= 0", prefix)
	}
	return nil
}
