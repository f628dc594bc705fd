// Package database provides read-only connection pools for the gatherer's
// databases.
//
// The gatherer keeps its data in two places:
//   - PostgreSQL: markets, events (relational data)
//   - TimescaleDB: trades (time-series data)
//
// Trades are read from TimescaleDB; their series are resolved in PostgreSQL.
package database
