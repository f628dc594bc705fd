package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/api"
	"github.com/rickgao/kalshi-washcharts/internal/auth"
	"github.com/rickgao/kalshi-washcharts/internal/config"
	"github.com/rickgao/kalshi-washcharts/internal/database"
	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// Source provides historical trades.
type Source interface {
	// Trades returns every trade created at or after since.
	Trades(ctx context.Context, since time.Time) ([]model.Trade, error)

	// Close releases underlying resources.
	Close() error
}

// Open creates the source selected by cfg.
func Open(ctx context.Context, cfg config.DataConfig, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Source {
	case config.SourceParquet:
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, fmt.Errorf("stat dataset: %w", err)
		}
		return NewParquetSource(cfg.Path, cfg.BatchSize, logger), nil

	case config.SourceTimescale:
		logger.Info("connecting to databases",
			"timescale", fmt.Sprintf("%s:%d/%s", cfg.Timescale.Host, cfg.Timescale.Port, cfg.Timescale.Name),
			"postgres", fmt.Sprintf("%s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Name),
		)
		pools, err := database.NewPools(ctx, cfg.Postgres, cfg.Timescale)
		if err != nil {
			return nil, err
		}
		return NewTimescaleSource(pools, cfg.BatchSize, logger), nil

	case config.SourceAPI:
		client, err := newAPIClient(cfg.API, logger)
		if err != nil {
			return nil, err
		}
		return NewAPISource(client, cfg.BatchSize, logger), nil

	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

func newAPIClient(cfg config.APIConfig, logger *slog.Logger) (*api.Client, error) {
	opts := []api.ClientOption{
		api.WithLogger(logger),
		api.WithTimeout(cfg.Timeout),
		api.WithRetries(cfg.MaxRetries, time.Second),
	}
	if cfg.APIKey != "" {
		creds, err := auth.LoadCredentials(cfg.APIKey, cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("load api credentials: %w", err)
		}
		opts = append(opts, api.WithSigner(creds))
	}
	return api.NewClient(cfg.RestURL, opts...), nil
}

// Describe returns a human-readable location for the configured source.
func Describe(cfg config.DataConfig) string {
	switch cfg.Source {
	case config.SourceTimescale:
		return fmt.Sprintf("timescale://%s:%d/%s", cfg.Timescale.Host, cfg.Timescale.Port, cfg.Timescale.Name)
	case config.SourceAPI:
		return cfg.API.RestURL
	default:
		return cfg.Path
	}
}
