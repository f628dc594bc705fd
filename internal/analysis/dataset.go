package analysis

import (
	"sync"

	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// Dataset is the loaded, read-only trade set shared by every chart.
// Repetitive flags are computed on first use.
type Dataset struct {
	trades []model.Trade

	flagOnce sync.Once
	flagged  []FlaggedTrade
}

// NewDataset wraps trades. The slice must not be modified afterwards.
func NewDataset(trades []model.Trade) *Dataset {
	return &Dataset{trades: trades}
}

// Trades returns the underlying trades.
func (d *Dataset) Trades() []model.Trade {
	return d.trades
}

// Len returns the number of trades.
func (d *Dataset) Len() int {
	return len(d.trades)
}

// Flagged returns the trades annotated with repetitive flags.
func (d *Dataset) Flagged() []FlaggedTrade {
	d.flagOnce.Do(func() {
		d.flagged = ComputeRepetitiveFlags(d.trades)
	})
	return d.flagged
}
