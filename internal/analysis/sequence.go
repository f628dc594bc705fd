package analysis

import (
	"slices"
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/market"
	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// Gap window (inclusive) for a trade to count as repetitive.
const (
	MinRepetitiveGap = time.Second
	MaxRepetitiveGap = time.Minute
)

// FlaggedTrade is a trade annotated with its per-ticker neighbourhood.
type FlaggedTrade struct {
	model.Trade
	Market string // Classified market label

	PrevContracts int
	HasPrev       bool
	NextContracts int
	HasNext       bool

	Gap time.Duration // Time since the previous trade on the ticker; valid when HasPrev

	Repetitive bool
}

// ComputeRepetitiveFlags groups trades by ticker, orders each group by time
// and flags trades whose size equals both neighbours with a gap to the
// previous trade inside [MinRepetitiveGap, MaxRepetitiveGap].
//
// The result is ordered by ticker, then time. The input is not modified.
func ComputeRepetitiveFlags(trades []model.Trade) []FlaggedTrade {
	out := make([]FlaggedTrade, 0, len(trades))
	labels := make(map[string]string)

	for _, seq := range sequences(trades) {
		for i, tr := range seq {
			f := FlaggedTrade{Trade: tr, Market: classifyCached(labels, tr.ReportTicker)}
			if i > 0 {
				prev := seq[i-1]
				f.HasPrev = true
				f.PrevContracts = prev.Contracts
				f.Gap = tr.CreatedAt.Sub(prev.CreatedAt)
			}
			if i < len(seq)-1 {
				f.HasNext = true
				f.NextContracts = seq[i+1].Contracts
			}
			f.Repetitive = isRepetitive(f)
			out = append(out, f)
		}
	}

	return out
}

func isRepetitive(f FlaggedTrade) bool {
	if !f.HasPrev || !f.HasNext {
		return false
	}
	if f.Contracts != f.PrevContracts || f.Contracts != f.NextContracts {
		return false
	}
	return f.Gap >= MinRepetitiveGap && f.Gap <= MaxRepetitiveGap
}

// sequences returns one time-ordered copy of the trades per ticker,
// ordered by ticker.
func sequences(trades []model.Trade) [][]model.Trade {
	groups := make(map[string][]model.Trade)
	for _, tr := range trades {
		groups[tr.Ticker] = append(groups[tr.Ticker], tr)
	}

	tickers := make([]string, 0, len(groups))
	for tk := range groups {
		tickers = append(tickers, tk)
	}
	slices.Sort(tickers)
	out := make([][]model.Trade, 0, len(tickers))
	for _, tk := range tickers {
		seq := groups[tk]
		slices.SortStableFunc(seq, compareTrades)
		out = append(out, seq)
	}
	return out
}

func compareTrades(a, b model.Trade) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}

func classifyCached(cache map[string]string, reportTicker string) string {
	if label, ok := cache[reportTicker]; ok {
		return label
	}
	label := market.Classify(reportTicker)
	cache[reportTicker] = label
	return label
}
