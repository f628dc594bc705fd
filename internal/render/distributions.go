package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rickgao/kalshi-washcharts/internal/analysis"
)

// SizeDistribution draws the repetitive rate for each trade size. Every
// requested size gets a slot; sizes without trades show "n/a".
func (r *Renderer) SizeDistribution(file, title string, rows []analysis.SizeRate) (string, error) {
	return r.write(file, title, func(w io.Writer) error {
		layout, ok := r.sizeChart(title, rows)
		if !ok {
			return ErrNoData
		}
		return r.drawVBar(w, layout)
	})
}

func (r *Renderer) sizeChart(title string, rows []analysis.SizeRate) (vbarChart, bool) {
	bars := make([]bar, len(rows))
	var hi float64
	var total int64
	for i, row := range rows {
		total += row.Total
		b := bar{Label: strconv.Itoa(row.Size), Text: "n/a"}
		if rate, ok := row.Rate(); ok {
			hi = max(hi, rate)
			b.Value = rate
			b.Color = SizeTiers.Color(rate)
			b.Text = fmt.Sprintf("%.1f%%", rate)
			b.Inner = r.count(row.Total)
		}
		bars[i] = b
	}
	return vbarChart{
		Title:    title,
		XLabel:   "Contracts per Trade",
		YLabel:   "Repetitive Rate (%)",
		Suffix:   "%",
		Bars:     bars,
		YMax:     headroom(hi, 1.2, 1),
		Legend:   SizeTiers.Legend(),
		LegendAt: upperRight,
	}, total > 0
}

// TimingDistribution draws the gap histogram with one bar per bucket,
// shortest gap first.
func (r *Renderer) TimingDistribution(file, title string, rows []analysis.GapCount) (string, error) {
	return r.write(file, title, func(w io.Writer) error {
		layout, ok := r.timingChart(title, rows)
		if !ok {
			return ErrNoData
		}
		return r.drawVBar(w, layout)
	})
}

func (r *Renderer) timingChart(title string, rows []analysis.GapCount) (vbarChart, bool) {
	bars := make([]bar, len(rows))
	var hi, total int64
	for i, row := range rows {
		hi = max(hi, row.Count)
		total += row.Count
		bars[i] = bar{
			Label: row.Bucket.Label,
			Value: float64(row.Count),
			Color: rampColor(i),
			Text:  r.count(row.Count),
		}
	}
	return vbarChart{
		Title:        title,
		XLabel:       "Time Since Previous Size-1 Trade",
		YLabel:       "Number of Trades",
		Bars:         bars,
		YMax:         headroom(float64(hi), 1.15, 1),
		RotateText:   true,
		RotateLabels: true,
	}, total > 0
}
