// Package api is a read-only client for Kalshi's REST market data.
//
// Only the endpoints needed to rebuild the trade history are covered:
//
//   - GET /markets/trades  public trade prints, cursor paginated
//   - GET /markets         market metadata, used to find a market's event
//   - GET /events/{ticker} event metadata, carries the series ticker
//
// Production base URL: https://api.elections.kalshi.com/trade-api/v2
package api
