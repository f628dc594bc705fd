// Package source loads historical trades for analysis.
//
// Sources:
//   - Parquet: the exported all_trades.parquet dataset (default)
//   - Timescale: the gatherer's trades table, joined to markets and events
//     for the report ticker
//   - Memory: an in-process slice, used by tests and tooling
//
// Every source returns trades at or after a start time; rows that cannot be
// parsed are skipped and counted rather than failing the load.
package source
