package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// ParseTimestamp parses an ISO 8601 timestamp. Values without a zone are
// taken as UTC.
func ParseTimestamp(iso string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02T15:04:05.999999999", iso)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", iso, err)
	}
	return t, nil
}

// SeriesFromTicker returns the series prefix of a market ticker, e.g.
// "KXBTCD" for "KXBTCD-25JAN0117-T95000".
func SeriesFromTicker(ticker string) string {
	series, _, _ := strings.Cut(ticker, "-")
	return series
}

// ToModel converts an APITrade to model.Trade under the given series.
func (t APITrade) ToModel(series string) (model.Trade, error) {
	id, err := uuid.Parse(t.TradeID)
	if err != nil {
		return model.Trade{}, fmt.Errorf("parse trade id %q: %w", t.TradeID, err)
	}
	created, err := ParseTimestamp(t.CreatedTime)
	if err != nil {
		return model.Trade{}, err
	}
	if t.Count < 0 {
		return model.Trade{}, fmt.Errorf("trade %s: negative count %d", t.TradeID, t.Count)
	}
	return model.Trade{
		TradeID:      id,
		CreatedAt:    created,
		Ticker:       t.Ticker,
		ReportTicker: series,
		Contracts:    t.Count,
	}, nil
}
