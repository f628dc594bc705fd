package source

import (
	"context"
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// Memory serves trades from a slice.
type Memory struct {
	trades []model.Trade
}

// NewMemory creates a Memory source over trades.
func NewMemory(trades []model.Trade) *Memory {
	return &Memory{trades: trades}
}

// Trades returns the trades at or after since.
func (m *Memory) Trades(ctx context.Context, since time.Time) ([]model.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Trade, 0, len(m.trades))
	for _, tr := range m.trades {
		if !tr.CreatedAt.Before(since) {
			out = append(out, tr)
		}
	}
	return out, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
