package analysis

import (
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/market"
	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// Predicate selects trades.
type Predicate func(model.Trade) bool

// Where returns the trades matching every predicate.
func Where(trades []model.Trade, preds ...Predicate) []model.Trade {
	out := make([]model.Trade, 0, len(trades))
next:
	for _, tr := range trades {
		for _, p := range preds {
			if !p(tr) {
				continue next
			}
		}
		out = append(out, tr)
	}
	return out
}

// Since keeps trades at or after start.
func Since(start time.Time) Predicate {
	return func(tr model.Trade) bool {
		return !tr.CreatedAt.Before(start)
	}
}

// InMarket keeps trades classified as label.
func InMarket(label string) Predicate {
	return func(tr model.Trade) bool {
		return market.Classify(tr.ReportTicker) == label
	}
}

// WithContracts keeps trades of exactly n contracts.
func WithContracts(n int) Predicate {
	return func(tr model.Trade) bool {
		return tr.Contracts == n
	}
}

// FlaggedInMarket returns the flagged trades classified as label.
func FlaggedInMarket(flagged []FlaggedTrade, label string) []FlaggedTrade {
	out := make([]FlaggedTrade, 0)
	for _, f := range flagged {
		if f.Market == label {
			out = append(out, f)
		}
	}
	return out
}
