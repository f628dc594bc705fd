package model

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Trade represents one executed trade from the historical dataset.
type Trade struct {
	TradeID      uuid.UUID // Kalshi trade ID (uuid.Nil when the source has none)
	CreatedAt    time.Time // Execution time
	Ticker       string    // Market ticker (e.g., "KXBTCD-25JAN0117-T94999.99")
	ReportTicker string    // Report category / series ticker (e.g., "KXBTCD")
	Contracts    int       // Number of contracts traded
}

// Before reports whether t sorts before o within a ticker's sequence.
// Ties on CreatedAt fall back to Contracts, then TradeID, so the order
// never depends on how rows arrived from the source.
func (t Trade) Before(o Trade) bool {
	if !t.CreatedAt.Equal(o.CreatedAt) {
		return t.CreatedAt.Before(o.CreatedAt)
	}
	if t.Contracts != o.Contracts {
		return t.Contracts < o.Contracts
	}
	return bytes.Compare(t.TradeID[:], o.TradeID[:]) < 0
}
