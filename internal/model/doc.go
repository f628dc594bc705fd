// Package model defines shared data types used across the chart generator.
//
// Conventions:
//   - Timestamps: time.Time (UTC when the source carries no zone)
//   - IDs: string for tickers, uuid.UUID for trade IDs (zero when unknown)
//   - Quantities: integer contracts
package model
