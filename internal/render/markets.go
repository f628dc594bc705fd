package render

import (
	"fmt"
	"io"

	"github.com/rickgao/kalshi-washcharts/internal/analysis"
	"github.com/rickgao/kalshi-washcharts/internal/market"
)

// RepetitiveByMarket draws one horizontal bar per market, highest rate on
// top, colored by MarketTiers.
func (r *Renderer) RepetitiveByMarket(file, title string, rows []analysis.MarketRate) (string, error) {
	return r.write(file, title, func(w io.Writer) error {
		return r.drawHBar(w, marketChart(title, rows))
	})
}

func marketChart(title string, rows []analysis.MarketRate) hbarChart {
	bars := make([]bar, 0, len(rows))
	var hi float64
	for i := len(rows) - 1; i >= 0; i-- {
		rate := rows[i].RateOrZero()
		hi = max(hi, rate)
		bars = append(bars, bar{
			Label: rows[i].Market,
			Value: rate,
			Color: MarketTiers.Color(rate),
			Text:  fmt.Sprintf("%.2f%%", rate),
		})
	}
	return hbarChart{
		Title:  title,
		XLabel: "Repetitive Trade Rate (%)",
		Suffix: "%",
		Bars:   bars,
		XMax:   headroom(hi, 1.2, 1),
		Legend: MarketTiers.Legend(),
	}
}

// SportsVsCrypto draws the category comparison: sports markets in blue
// below a dashed divider, crypto in red above it, with a ratio callout.
func (r *Renderer) SportsVsCrypto(file, title string, cmp analysis.Comparison) (string, error) {
	return r.write(file, title, func(w io.Writer) error {
		return r.drawHBar(w, comparisonChart(title, cmp))
	})
}

func comparisonChart(title string, cmp analysis.Comparison) hbarChart {
	bars := make([]bar, 0, len(cmp.Rows))
	var hi float64
	for _, row := range cmp.Rows {
		rate := row.RateOrZero()
		hi = max(hi, rate)
		color := colorBlue
		if row.Category == market.CategoryCrypto {
			color = colorRed
		}
		bars = append(bars, bar{
			Label: row.Market,
			Value: rate,
			Color: color,
			Text:  fmt.Sprintf("%.2f%%", rate),
		})
	}

	layout := hbarChart{
		Title:   title,
		XLabel:  "Repetitive Trade Rate (%)",
		Suffix:  "%",
		Bars:    bars,
		XMax:    headroom(hi, 1.3, 1),
		Divider: cmp.SportsCount(),
		Legend: []legendEntry{
			{Label: "Sports (Baseline)", Color: colorBlue},
			{Label: "Crypto (Elevated)", Color: colorRed},
		},
	}
	if ratio, ok := cmp.Ratio(); ok && cmp.SportsCount() < len(bars) {
		layout.Callout = &callout{Bar: len(bars) - 1, Text: ratioLabel(ratio)}
	}
	return layout
}

// ratioLabel renders a crypto/sports ratio as "21x higher".
func ratioLabel(ratio float64) string {
	switch {
	case ratio >= 10:
		return fmt.Sprintf("%.0fx higher", ratio)
	case ratio >= 1:
		return fmt.Sprintf("%.1fx higher", ratio)
	case ratio > 0:
		return fmt.Sprintf("%.1fx lower", 1/ratio)
	default:
		return "no repetitive crypto trades"
	}
}
