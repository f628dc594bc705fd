// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// Every field is optional; Default returns a configuration that reproduces the
// standard chart set from data/all_trades.parquet into charts/.
package config
