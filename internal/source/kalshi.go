package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/api"
	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// marketBatch is how many tickers are looked up per GET /markets call.
const marketBatch = 100

// APISource pages through Kalshi's public trade history. Trades carry only
// the market ticker, so each new market is resolved to its series through
// its event; markets that cannot be resolved fall back to the ticker prefix.
type APISource struct {
	client   *api.Client
	pageSize int
	logger   *slog.Logger

	series map[string]string // market ticker -> series ticker
	events map[string]string // event ticker -> series ticker
}

// NewAPISource creates an APISource.
func NewAPISource(client *api.Client, pageSize int, logger *slog.Logger) *APISource {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 || pageSize > api.MaxPageSize {
		pageSize = api.MaxPageSize
	}
	return &APISource{
		client:   client,
		pageSize: pageSize,
		logger:   logger,
		series:   make(map[string]string),
		events:   make(map[string]string),
	}
}

// Trades fetches every trade created at or after since.
func (s *APISource) Trades(ctx context.Context, since time.Time) ([]model.Trade, error) {
	var (
		trades  []model.Trade
		pages   int
		skipped int
	)
	opts := api.GetTradesOptions{Limit: s.pageSize, MinTS: since}

	err := s.client.EachTradePage(ctx, opts, func(page []api.APITrade) error {
		pages++
		if err := s.resolve(ctx, page); err != nil {
			return err
		}
		for _, at := range page {
			tr, err := at.ToModel(s.series[at.Ticker])
			if err != nil {
				skipped++
				s.logger.Debug("skipping trade", "trade_id", at.TradeID, "error", err)
				continue
			}
			if tr.CreatedAt.Before(since) {
				continue
			}
			trades = append(trades, tr)
		}
		if pages%100 == 0 {
			s.logger.Info("fetching trades", "pages", pages, "trades", len(trades))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}

	s.logger.Info("api trades loaded",
		"trades", len(trades),
		"pages", pages,
		"skipped", skipped,
		"markets", len(s.series),
	)
	return trades, nil
}

// resolve maps every unseen market ticker in page to a series ticker.
func (s *APISource) resolve(ctx context.Context, page []api.APITrade) error {
	var missing []string
	seen := make(map[string]bool)
	for _, at := range page {
		if _, ok := s.series[at.Ticker]; ok || seen[at.Ticker] {
			continue
		}
		seen[at.Ticker] = true
		missing = append(missing, at.Ticker)
	}

	for start := 0; start < len(missing); start += marketBatch {
		batch := missing[start:min(start+marketBatch, len(missing))]
		resp, err := s.client.GetMarkets(ctx, api.GetMarketsOptions{Limit: len(batch), Tickers: batch})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("market lookup failed, using ticker prefix", "markets", len(batch), "error", err)
			continue
		}
		for _, m := range resp.Markets {
			series, err := s.eventSeries(ctx, m.EventTicker)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("event lookup failed, using ticker prefix", "event", m.EventTicker, "error", err)
				continue
			}
			s.series[m.Ticker] = series
		}
	}

	for _, t := range missing {
		if _, ok := s.series[t]; !ok {
			s.series[t] = api.SeriesFromTicker(t)
		}
	}
	return nil
}

func (s *APISource) eventSeries(ctx context.Context, eventTicker string) (string, error) {
	if series, ok := s.events[eventTicker]; ok {
		return series, nil
	}
	ev, err := s.client.GetEvent(ctx, eventTicker)
	if err != nil {
		return "", err
	}
	series := ev.SeriesTicker
	if series == "" {
		series = api.SeriesFromTicker(eventTicker)
	}
	s.events[eventTicker] = series
	return series, nil
}

// Close is a no-op; the HTTP client holds no resources that need closing.
func (s *APISource) Close() error { return nil }
