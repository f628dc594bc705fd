// Package version holds build metadata for washcharts.
//
// Values are injected with ldflags:
//
//	go build -ldflags "-X github.com/rickgao/kalshi-washcharts/internal/version.Version=0.3.0 \
//	                   -X github.com/rickgao/kalshi-washcharts/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rickgao/kalshi-washcharts/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/washcharts
package version

import "log/slog"

// Set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns "version (commit) built time".
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime
}

// Attr groups the build metadata for structured logs.
func Attr() slog.Attr {
	return slog.Group("build",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("time", BuildTime),
	)
}
