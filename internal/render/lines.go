package render

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/rickgao/kalshi-washcharts/internal/analysis"
)

// HourlyOptions labels the two markets of the hourly overlay.
type HourlyOptions struct {
	Primary   string // Red series, annotated at Highlight
	Secondary string // Blue series
	XLabel    string
	Highlight *int // Hour to mark; nil disables the marker
}

// Overnight band, in hours of the reference zone.
const (
	overnightStart = 0
	overnightEnd   = 6
)

// HourlyPattern draws the share of each market's trades per hour of day.
func (r *Renderer) HourlyPattern(file, title string, rows []analysis.HourlyShare, opts HourlyOptions) (string, error) {
	return r.write(file, title, func(w io.Writer) error {
		ch, err := r.hourlyChart(title, rows, opts)
		if err != nil {
			return err
		}
		return ch.Render(chart.PNG, w)
	})
}

func (r *Renderer) hourlyChart(title string, rows []analysis.HourlyShare, opts HourlyOptions) (*chart.Chart, error) {
	xs := make([]float64, len(rows))
	primary := make([]float64, len(rows))
	secondary := make([]float64, len(rows))
	var total int64
	var hi float64
	for i, row := range rows {
		xs[i] = float64(row.Hour)
		primary[i] = row.PrimaryPct
		secondary[i] = row.SecondaryPct
		total += row.Primary + row.Secondary
		hi = max(hi, row.PrimaryPct, row.SecondaryPct)
	}
	if total == 0 {
		return nil, ErrNoData
	}

	plot := plotRange{xmin: 0, xmax: 23, ymin: 0, ymax: headroom(hi, 1.3, 1)}
	ch := &chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: sizeTitle, FontColor: colorText},
		Width:      r.width,
		Height:     r.height,
		DPI:        r.dpi,
		Font:       r.font,
		Background: chart.Style{Padding: chart.Box{Top: 70, Left: 20, Right: 30, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  opts.XLabel,
			Range: newFixedRange(plot.xmin, plot.xmax, hourTicks()),
		},
		YAxis: chart.YAxis{
			Name:  "% of Daily Trades",
			Range: newFixedRange(plot.ymin, plot.ymax, axisTicks(plot.ymax, 5, "%")),
		},
		Series: []chart.Series{
			overnightBand(plot),
			chart.ContinuousSeries{
				Name:    opts.Secondary,
				XValues: xs,
				YValues: secondary,
				Style: chart.Style{
					StrokeColor: colorBlue,
					StrokeWidth: 2.5,
					FillColor:   withAlpha(colorBlue, 0.3),
				},
			},
			chart.ContinuousSeries{
				Name:    opts.Primary,
				XValues: xs,
				YValues: primary,
				Style: chart.Style{
					StrokeColor: colorRed,
					StrokeWidth: 2.5,
					FillColor:   withAlpha(colorRed, 0.3),
				},
			},
		},
	}

	if h := opts.Highlight; h != nil && *h >= 0 && *h < len(rows) {
		ch.Elements = append(ch.Elements, r.hourMarker(plot, *h, primary[*h], opts.Primary))
	}
	ch.Elements = append(ch.Elements, legendElement(r.font, []legendEntry{
		{Label: opts.Secondary, Color: colorBlue},
		{Label: opts.Primary, Color: colorRed},
		{Label: "Overnight (US)", Color: withAlpha(colorGray, 0.4)},
	}, upperRight))
	return ch, nil
}

// overnightBand shades the overnight hours. It is the first series so the
// market areas are painted over it.
func overnightBand(plot plotRange) chart.ContinuousSeries {
	shade := withAlpha(colorGray, 0.15)
	return chart.ContinuousSeries{
		Name:    "Overnight (US)",
		XValues: []float64{overnightStart, overnightStart, overnightEnd, overnightEnd},
		YValues: []float64{plot.ymin, plot.ymax, plot.ymax, plot.ymin},
		Style: chart.Style{
			StrokeColor: shade,
			StrokeWidth: 1,
			FillColor:   shade,
		},
	}
}

// hourMarker draws a dashed vertical line at hour with an arrow annotation
// pointing at the primary series.
func (r *Renderer) hourMarker(plot plotRange, hour int, pct float64, market string) chart.Renderable {
	label := fmt.Sprintf("%s: %.1f%% of %s trades", hourName(hour), pct, market)
	return func(rr chart.Renderer, box chart.Box, _ chart.Style) {
		c := &canvas{r: rr, font: r.font}
		x, top := plot.point(box, float64(hour), plot.ymax)
		_, bottom := plot.point(box, float64(hour), plot.ymin)
		c.line(x, top, x, bottom, withAlpha(colorRed, 0.7), 1.5, dividerDash)

		px, py := plot.point(box, float64(hour), pct)
		dx := 2.0
		st := textStyle{size: sizeLabel, color: colorRed, valign: alignMiddle}
		if float64(hour) > (plot.xmax-plot.xmin)*0.6 {
			dx = -2
			st.align = alignRight
		}
		tx, ty := plot.point(box, float64(hour)+dx, math.Min(pct+(plot.ymax-plot.ymin)*0.12, plot.ymax*0.95))
		c.text(label, tx, ty, st)
		c.arrow(tx, ty, px, py, colorRed, 1.5)
	}
}

// hourTicks labels every second hour as "h:00".
func hourTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 12)
	for h := 0; h < 24; h += 2 {
		ticks = append(ticks, chart.Tick{Value: float64(h), Label: fmt.Sprintf("%d:00", h)})
	}
	return ticks
}

// hourName renders an hour of day as "4 AM".
func hourName(h int) string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return fmt.Sprintf("%d AM", h)
	case h == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", h-12)
	}
}

// MonthlyTrend draws the monthly repetitive rate as a line over monthly
// trade volume bars on a secondary axis.
func (r *Renderer) MonthlyTrend(file, title string, rows []analysis.MonthlyRate) (string, error) {
	return r.write(file, title, func(w io.Writer) error {
		ch, err := r.monthlyChart(title, rows)
		if err != nil {
			return err
		}
		return ch.Render(chart.PNG, w)
	})
}

const barHalfWidth = 0.3

func (r *Renderer) monthlyChart(title string, rows []analysis.MonthlyRate) (*chart.Chart, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	xs := make([]float64, len(rows))
	rates := make([]float64, len(rows))
	ticks := make([]chart.Tick, len(rows))
	var barX, barY []float64
	var hiRate, hiK float64
	for i, row := range rows {
		x := float64(i)
		xs[i] = x
		rates[i] = row.RateOrZero()
		ticks[i] = chart.Tick{Value: x, Label: row.Label()}
		hiRate = max(hiRate, rates[i])

		k := float64(row.Total) / 1000
		hiK = max(hiK, k)
		// Each bar is a rectangle traced along the baseline; the series
		// fill closes it back to the axis.
		barX = append(barX, x-barHalfWidth, x-barHalfWidth, x+barHalfWidth, x+barHalfWidth)
		barY = append(barY, 0, k, k, 0)
	}

	rateMax := headroom(hiRate, 1.2, 1)
	volMax := headroom(hiK, 1.15, 1)
	ch := &chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: sizeTitle, FontColor: colorText},
		Width:      r.width,
		Height:     r.height,
		DPI:        r.dpi,
		Font:       r.font,
		Background: chart.Style{Padding: chart.Box{Top: 70, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Month",
			Range: newFixedRange(-0.5, float64(len(rows))-0.5, ticks),
		},
		YAxis: chart.YAxis{
			Name:  "Repetitive Rate (%)",
			Range: newFixedRange(0, rateMax, axisTicks(rateMax, 5, "%")),
		},
		YAxisSecondary: chart.YAxis{
			Name:  "Total Trades (thousands)",
			Range: newFixedRange(0, volMax, axisTicks(volMax, 5, "K")),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Total Trades (K)",
				YAxis:   chart.YAxisSecondary,
				XValues: barX,
				YValues: barY,
				Style: chart.Style{
					StrokeColor: withAlpha(colorBlue, 0.6),
					StrokeWidth: 1,
					FillColor:   withAlpha(colorBlue, 0.3),
				},
			},
			chart.ContinuousSeries{
				Name:    "Repetitive Rate",
				XValues: xs,
				YValues: rates,
				Style: chart.Style{
					StrokeColor: colorRed,
					StrokeWidth: 2.5,
					DotColor:    colorRed,
					DotWidth:    4,
					FillColor:   withAlpha(colorRed, 0.2),
				},
			},
		},
	}
	ch.Elements = []chart.Renderable{legendElement(r.font, []legendEntry{
		{Label: "Repetitive Rate", Color: colorRed},
		{Label: "Total Trades (K)", Color: withAlpha(colorBlue, 0.5)},
	}, upperLeft)}
	return ch, nil
}

// plotRange maps data coordinates onto a go-chart plot box the same way
// go-chart's continuous ranges do.
type plotRange struct {
	xmin, xmax float64
	ymin, ymax float64
}

func (p plotRange) point(box chart.Box, x, y float64) (int, int) {
	px := box.Left + int(math.Round((x-p.xmin)/(p.xmax-p.xmin)*float64(box.Width())))
	py := box.Bottom - int(math.Round((y-p.ymin)/(p.ymax-p.ymin)*float64(box.Height())))
	return px, py
}
