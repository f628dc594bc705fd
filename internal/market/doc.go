// Package market classifies report tickers into human-readable markets.
//
// Classification is a pure lookup over an ordered, immutable rule table:
// the first matching rule wins and unmatched tickers map to Other.
package market
