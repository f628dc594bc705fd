package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/kalshi-washcharts/internal/config"
)

// Pools holds the gatherer's two databases.
type Pools struct {
	// Postgres holds markets and events (relational data).
	Postgres *pgxpool.Pool

	// Timescale holds trades (time-series data).
	Timescale *pgxpool.Pool
}

// NewPools connects to both databases. Nothing is left open on error.
func NewPools(ctx context.Context, postgres, timescale config.DBConfig) (*Pools, error) {
	pg, err := Connect(ctx, postgres)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	ts, err := Connect(ctx, timescale)
	if err != nil {
		pg.Close()
		return nil, fmt.Errorf("connect timescale: %w", err)
	}

	return &Pools{
		Postgres:  pg,
		Timescale: ts,
	}, nil
}

// Close closes both connection pools.
func (p *Pools) Close() {
	if p.Postgres != nil {
		p.Postgres.Close()
	}
	if p.Timescale != nil {
		p.Timescale.Close()
	}
}
