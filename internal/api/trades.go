package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetTrades fetches a page of trades.
func (c *Client) GetTrades(ctx context.Context, opts GetTradesOptions) (*TradesResponse, error) {
	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(min(opts.Limit, MaxPageSize)))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.Ticker != "" {
		query.Set("ticker", opts.Ticker)
	}
	if !opts.MinTS.IsZero() {
		query.Set("min_ts", strconv.FormatInt(opts.MinTS.Unix(), 10))
	}
	if !opts.MaxTS.IsZero() {
		query.Set("max_ts", strconv.FormatInt(opts.MaxTS.Unix(), 10))
	}

	var resp TradesResponse
	if err := c.get(ctx, "/markets/trades", query, &resp); err != nil {
		return nil, fmt.Errorf("get trades: %w", err)
	}
	return &resp, nil
}

// EachTradePage calls fn with every page of trades matching opts,
// following cursors until the last page or until fn returns an error.
func (c *Client) EachTradePage(ctx context.Context, opts GetTradesOptions, fn func([]APITrade) error) error {
	if opts.Limit == 0 {
		opts.Limit = MaxPageSize
	}

	for {
		resp, err := c.GetTrades(ctx, opts)
		if err != nil {
			return err
		}
		if err := fn(resp.Trades); err != nil {
			return err
		}
		if resp.Cursor == "" || len(resp.Trades) == 0 {
			return nil
		}
		opts.Cursor = resp.Cursor
	}
}
