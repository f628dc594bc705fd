package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// ParquetSource reads trades from a parquet file.
type ParquetSource struct {
	path      string
	batchSize int
	logger    *slog.Logger
}

// NewParquetSource creates a ParquetSource for path.
func NewParquetSource(path string, batchSize int, logger *slog.Logger) *ParquetSource {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize < 1 {
		batchSize = 1
	}
	return &ParquetSource{
		path:      path,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Trades streams the file in batches, keeping rows at or after since.
func (s *ParquetSource) Trades(ctx context.Context, since time.Time) ([]model.Trade, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	cols, err := resolveColumns(pf.Schema())
	if err != nil {
		return nil, fmt.Errorf("read parquet schema: %w", err)
	}

	r := parquet.NewReader(pf)
	defer r.Close()

	start := time.Now()
	total := r.NumRows()
	trades := make([]model.Trade, 0, total)
	buf := make([]parquet.Row, s.batchSize)

	var read, skipped, before int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, readErr := r.ReadRows(buf)
		read += int64(n)
		for _, row := range buf[:n] {
			tr, ok := cols.trade(row)
			if !ok {
				skipped++
				continue
			}
			if tr.CreatedAt.Before(since) {
				before++
				continue
			}
			trades = append(trades, tr)
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet rows: %w", readErr)
		}
	}

	if read > 0 && skipped == read {
		return nil, fmt.Errorf("read parquet rows: none of %d rows in %s could be decoded", read, s.path)
	}
	if skipped > 0 {
		s.logger.Warn("skipped unparseable rows", "path", s.path, "count", skipped)
	}
	s.logger.Info("loaded trades",
		"path", s.path,
		"rows", total,
		"kept", len(trades),
		"before_start", before,
		"duration", time.Since(start),
	)
	return trades, nil
}

// Close is a no-op; the file is opened per call.
func (s *ParquetSource) Close() error { return nil }

// parquetColumns maps the columns the analysis reads to their leaf
// indexes and decoders.
type parquetColumns struct {
	createTS, ticker, report, contracts int
	timestamp                           timestampDecoder
	count                               func(parquet.Value) (int, bool)
}

func resolveColumns(schema *parquet.Schema) (*parquetColumns, error) {
	lookup := func(name string) (parquet.LeafColumn, error) {
		leaf, ok := schema.Lookup(name)
		if !ok {
			return leaf, fmt.Errorf("missing column %q", name)
		}
		return leaf, nil
	}

	ts, err := lookup("create_ts")
	if err != nil {
		return nil, err
	}
	ticker, err := lookup("ticker_name")
	if err != nil {
		return nil, err
	}
	report, err := lookup("report_ticker")
	if err != nil {
		return nil, err
	}
	contracts, err := lookup("contracts_traded")
	if err != nil {
		return nil, err
	}

	decode, err := newTimestampDecoder(ts.Node.Type())
	if err != nil {
		return nil, fmt.Errorf("column create_ts: %w", err)
	}
	count, err := countDecoder(contracts.Node.Type())
	if err != nil {
		return nil, fmt.Errorf("column contracts_traded: %w", err)
	}
	return &parquetColumns{
		createTS:  ts.ColumnIndex,
		ticker:    ticker.ColumnIndex,
		report:    report.ColumnIndex,
		contracts: contracts.ColumnIndex,
		timestamp: decode,
		count:     count,
	}, nil
}

// trade decodes one row. Rows with a null or unreadable timestamp, an
// empty ticker or an unreadable count are rejected.
func (c *parquetColumns) trade(row parquet.Row) (model.Trade, bool) {
	var tr model.Trade
	var hasTS, hasCount bool
	for _, v := range row {
		if v.IsNull() {
			continue
		}
		switch v.Column() {
		case c.createTS:
			tr.CreatedAt, hasTS = c.timestamp(v)
		case c.ticker:
			tr.Ticker = string(v.ByteArray())
		case c.report:
			tr.ReportTicker = string(v.ByteArray())
		case c.contracts:
			tr.Contracts, hasCount = c.count(v)
		}
	}
	if !hasTS || !hasCount || tr.Ticker == "" {
		return model.Trade{}, false
	}
	return tr, true
}

func countDecoder(t parquet.Type) (func(parquet.Value) (int, bool), error) {
	switch t.Kind() {
	case parquet.Int32:
		return func(v parquet.Value) (int, bool) { return int(v.Int32()), true }, nil
	case parquet.Int64:
		return func(v parquet.Value) (int, bool) { return int(v.Int64()), true }, nil
	case parquet.Double:
		return func(v parquet.Value) (int, bool) { return int(v.Double()), true }, nil
	case parquet.Float:
		return func(v parquet.Value) (int, bool) { return int(v.Float()), true }, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
}
