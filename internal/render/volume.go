package render

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rickgao/kalshi-washcharts/internal/analysis"
	"github.com/rickgao/kalshi-washcharts/internal/market"
)

var colorHighlightEdge = drawing.ColorFromHex("922b21")

// VolumeShare draws the contract volume share per market as a pie. The
// highlight market is outlined, Fed Decisions is orange, the merged Other
// slice is grey and the rest follow a blue ramp.
func (r *Renderer) VolumeShare(file, title string, rows []analysis.VolumeSlice, highlight string) (string, error) {
	return r.write(file, title, func(w io.Writer) error {
		values := volumeValues(rows, highlight)
		if len(values) == 0 {
			return ErrNoData
		}
		pc := chart.PieChart{
			Title:      title,
			TitleStyle: chart.Style{FontSize: sizeTitle, FontColor: colorText},
			Width:      r.width,
			Height:     r.height,
			DPI:        r.dpi,
			Font:       r.font,
			Background: chart.Style{Padding: chart.Box{Top: 80, Left: 40, Right: 40, Bottom: 40}},
			Values:     values,
		}
		return pc.Render(chart.PNG, w)
	})
}

func volumeValues(rows []analysis.VolumeSlice, highlight string) []chart.Value {
	values := make([]chart.Value, 0, len(rows))
	for i, row := range rows {
		if row.Volume <= 0 {
			continue
		}
		style := chart.Style{
			FillColor:   sliceColor(row, highlight, i, len(rows)),
			StrokeColor: drawing.ColorWhite,
			StrokeWidth: 2,
			FontSize:    sizeLabel,
			FontColor:   colorText,
		}
		if row.Market == highlight {
			style.StrokeColor = colorHighlightEdge
			style.StrokeWidth = 6
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", row.Market, row.Share),
			Value: float64(row.Volume),
			Style: style,
		})
	}
	return values
}

func sliceColor(row analysis.VolumeSlice, highlight string, i, n int) drawing.Color {
	switch {
	case row.Market == highlight:
		return colorRed
	case row.Market == market.FedDecisions:
		return colorOrange
	case row.Market == market.Other:
		return colorGray
	}
	t := 0.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	return lerp(blueRampDark, blueRampLight, t)
}
