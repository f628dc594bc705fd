package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rickgao/kalshi-washcharts/internal/config"
)

// ErrNoData is returned by draw functions that received nothing to plot.
var ErrNoData = errors.New("no data")

// Renderer writes charts into one output directory.
type Renderer struct {
	dir    string
	width  int
	height int
	dpi    float64
	font   *truetype.Font
	num    *message.Printer
	logger *slog.Logger
}

// New creates a Renderer for the output settings.
func New(cfg config.OutputConfig, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load chart font: %w", err)
	}
	return &Renderer{
		dir:    cfg.Dir,
		width:  cfg.Width,
		height: cfg.Height,
		dpi:    cfg.DPI,
		font:   font,
		num:    message.NewPrinter(language.English),
		logger: logger,
	}, nil
}

// Dir returns the output directory.
func (r *Renderer) Dir() string {
	return r.dir
}

// write renders into a temp file next to the target and renames it into
// place. A draw returning ErrNoData is replaced by a placeholder image.
func (r *Renderer) write(file, title string, draw func(w io.Writer) error) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(r.dir, file)
	tmp, err := os.CreateTemp(r.dir, "."+file+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	err = draw(tmp)
	if errors.Is(err, ErrNoData) {
		r.logger.Warn("no data for chart, writing placeholder", "file", file)
		if _, err = tmp.Seek(0, io.SeekStart); err == nil {
			if err = tmp.Truncate(0); err == nil {
				err = writePlaceholder(tmp, r.width, r.height, title)
			}
		}
	}
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("render %s: %w", file, err)
	}

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", fmt.Errorf("chmod %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", file, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename %s: %w", file, err)
	}

	r.logger.Debug("chart written", "path", path)
	return path, nil
}

// newCanvas starts a blank PNG canvas at the configured size.
func (r *Renderer) newCanvas() (*canvas, error) {
	rr, err := chart.PNG(r.width, r.height)
	if err != nil {
		return nil, fmt.Errorf("create png renderer: %w", err)
	}
	rr.SetDPI(r.dpi)
	c := &canvas{r: rr, font: r.font, width: r.width, height: r.height}
	c.fillRect(chart.Box{Right: r.width, Bottom: r.height}, colorBackground)
	return c, nil
}

// count formats n with thousands separators.
func (r *Renderer) count(n int64) string {
	return r.num.Sprintf("%d", n)
}
