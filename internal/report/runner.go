package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Runner renders a list of charts against one Env.
type Runner struct {
	env    *Env
	out    io.Writer
	logger *slog.Logger
}

// NewRunner creates a Runner. Progress lines are printed to out.
func NewRunner(env *Env, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{env: env, out: out, logger: logger}
}

// Run renders each chart in order. A failing chart does not stop the run;
// all failures are joined into the returned error. Cancelling ctx skips
// the charts not yet started.
func (r *Runner) Run(ctx context.Context, charts []Chart) error {
	var errs []error
	for _, c := range charts {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("run charts: %w", err))
			break
		}

		start := time.Now()
		path, err := r.render(c)
		if err != nil {
			r.logger.Error("chart failed", "chart", c.Name, "error", err)
			errs = append(errs, fmt.Errorf("chart %s: %w", c.Name, err))
			continue
		}

		r.logger.Info("chart generated",
			"chart", c.Name,
			"path", path,
			"duration", time.Since(start),
		)
		fmt.Fprintf(r.out, "✓ Generated: %s\n", c.File)
	}
	return errors.Join(errs...)
}

// render runs one chart, turning a panic in the query or drawing code into
// an error.
func (r *Runner) render(c Chart) (path string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return c.Render(r.env, c.File)
}
