package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rickgao/kalshi-washcharts/internal/api"
	"github.com/rickgao/kalshi-washcharts/internal/database"
	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// tradesQuery reads trades from TimescaleDB.
const tradesQuery = `
	SELECT trade_id::text, exchange_ts, ticker, size
	FROM trades
	WHERE exchange_ts >= $1
`

// seriesQuery resolves market tickers to series tickers in PostgreSQL.
const seriesQuery = `
	SELECT m.ticker, COALESCE(e.series_ticker, '')
	FROM markets m
	LEFT JOIN events e ON e.event_ticker = m.event_ticker
	WHERE m.ticker = ANY($1)
`

// Tickers per seriesQuery call.
const seriesBatch = 1000

// querier is the part of *pgxpool.Pool the source uses.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// tradeRow mirrors one row of tradesQuery.
type tradeRow struct {
	TradeID    string
	ExchangeTs int64 // µs since epoch
	Ticker     string
	Size       int
}

// TimescaleSource reads trades from the gatherer databases.
type TimescaleSource struct {
	trades    querier
	markets   querier
	close     func()
	batchSize int
	logger    *slog.Logger
}

// NewTimescaleSource creates a TimescaleSource over pools. It takes
// ownership of pools.
func NewTimescaleSource(pools *database.Pools, batchSize int, logger *slog.Logger) *TimescaleSource {
	s := newTimescaleSource(pools.Timescale, pools.Postgres, batchSize, logger)
	s.close = pools.Close
	return s
}

func newTimescaleSource(trades, markets querier, batchSize int, logger *slog.Logger) *TimescaleSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimescaleSource{
		trades:    trades,
		markets:   markets,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Trades queries every trade at or after since and attaches its series.
// Markets missing from PostgreSQL fall back to the ticker prefix.
func (s *TimescaleSource) Trades(ctx context.Context, since time.Time) ([]model.Trade, error) {
	start := time.Now()

	rows, err := s.trades.Query(ctx, tradesQuery, since.UnixMicro())
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}

	trades := make([]model.Trade, 0, s.batchSize)
	seen := make(map[string]bool)
	var tickers []string
	var badIDs int64
	var scanned tradeRow
	_, err = pgx.ForEachRow(rows, []any{
		&scanned.TradeID, &scanned.ExchangeTs, &scanned.Ticker, &scanned.Size,
	}, func() error {
		tr, ok := s.transform(scanned)
		if !ok {
			badIDs++
		}
		if !seen[tr.Ticker] {
			seen[tr.Ticker] = true
			tickers = append(tickers, tr.Ticker)
		}
		trades = append(trades, tr)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan trades: %w", err)
	}

	series, err := s.seriesOf(ctx, tickers)
	if err != nil {
		return nil, err
	}
	var fallback int
	for i := range trades {
		sr, ok := series[trades[i].Ticker]
		if !ok || sr == "" {
			sr = api.SeriesFromTicker(trades[i].Ticker)
			fallback++
		}
		trades[i].ReportTicker = sr
	}

	if badIDs > 0 {
		s.logger.Warn("trades with unparseable ids", "count", badIDs)
	}
	if fallback > 0 {
		s.logger.Warn("trades without a known market, using ticker prefix", "count", fallback)
	}
	s.logger.Info("loaded trades",
		"source", "timescale",
		"kept", len(trades),
		"markets", len(tickers),
		"duration", time.Since(start),
	)
	return trades, nil
}

// seriesOf looks up the series of each ticker, in batches.
func (s *TimescaleSource) seriesOf(ctx context.Context, tickers []string) (map[string]string, error) {
	series := make(map[string]string, len(tickers))
	for lo := 0; lo < len(tickers); lo += seriesBatch {
		batch := tickers[lo:min(lo+seriesBatch, len(tickers))]
		rows, err := s.markets.Query(ctx, seriesQuery, batch)
		if err != nil {
			return nil, fmt.Errorf("query markets: %w", err)
		}
		var ticker, sr string
		_, err = pgx.ForEachRow(rows, []any{&ticker, &sr}, func() error {
			series[ticker] = sr
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan markets: %w", err)
		}
	}
	return series, nil
}

// Close closes the connection pools.
func (s *TimescaleSource) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}

// transform converts a tradeRow to model.Trade. ok is false when the trade
// ID is not a valid UUID; the trade is still returned with uuid.Nil.
func (s *TimescaleSource) transform(r tradeRow) (model.Trade, bool) {
	id, err := uuid.Parse(r.TradeID)
	return model.Trade{
		TradeID:   id,
		CreatedAt: time.UnixMicro(r.ExchangeTs).UTC(),
		Ticker:    r.Ticker,
		Contracts: r.Size,
	}, err == nil
}
