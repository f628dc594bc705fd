package api

import "time"

// MaxPageSize is the largest limit the list endpoints accept.
const MaxPageSize = 1000

// TradesResponse from GET /markets/trades
type TradesResponse struct {
	Trades []APITrade `json:"trades"`
	Cursor string     `json:"cursor"`
}

// APITrade is one public trade print.
type APITrade struct {
	TradeID     string `json:"trade_id"`
	Ticker      string `json:"ticker"`
	Count       int    `json:"count"`        // Contracts
	CreatedTime string `json:"created_time"` // ISO 8601
	YesPrice    int    `json:"yes_price"`    // Cents
	NoPrice     int    `json:"no_price"`     // Cents
	TakerSide   string `json:"taker_side"`
}

// GetTradesOptions configures a GetTrades request.
type GetTradesOptions struct {
	Limit  int
	Cursor string
	Ticker string    // Single market; empty for all markets
	MinTS  time.Time // Inclusive lower bound; zero for none
	MaxTS  time.Time // Inclusive upper bound; zero for none
}

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// APIMarket is the subset of market fields used here.
type APIMarket struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	Title       string `json:"title"`
	Status      string `json:"status"`
}

// GetMarketsOptions configures a GetMarkets request.
type GetMarketsOptions struct {
	Limit   int
	Cursor  string
	Tickers []string
}

// SingleEventResponse from GET /events/{event_ticker}
type SingleEventResponse struct {
	Event APIEvent `json:"event"`
}

// APIEvent is the subset of event fields used here.
type APIEvent struct {
	EventTicker  string `json:"event_ticker"`
	SeriesTicker string `json:"series_ticker"`
	Title        string `json:"title"`
	Category     string `json:"category"`
}
