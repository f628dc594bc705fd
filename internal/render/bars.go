package render

import (
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type bar struct {
	Label string
	Value float64
	Color drawing.Color
	Text  string // Drawn past the end of the bar
	Inner string // Drawn inside the bar when it fits
}

type callout struct {
	Bar  int
	Text string
}

// hbarChart is a horizontal bar chart. Bars are listed bottom to top.
type hbarChart struct {
	Title   string
	XLabel  string
	Suffix  string // Appended to x tick labels
	Bars    []bar
	XMax    float64
	Legend  []legendEntry
	Divider int // Dashed line below this bar index; 0 draws none
	Callout *callout
}

// vbarChart is a vertical bar chart. Bars are listed left to right.
type vbarChart struct {
	Title        string
	XLabel       string
	YLabel       string
	Suffix       string
	Bars         []bar
	YMax         float64
	RotateText   bool // Turn value labels 45 degrees
	RotateLabels bool // Turn category labels 45 degrees
	Legend       []legendEntry
	LegendAt     corner
}

var dividerDash = []float64{6, 4}

func (r *Renderer) drawHBar(w io.Writer, layout hbarChart) error {
	if len(layout.Bars) == 0 {
		return ErrNoData
	}
	c, err := r.newCanvas()
	if err != nil {
		return err
	}
	c.title(layout.Title)

	labelW := 0
	for _, b := range layout.Bars {
		labelW = max(labelW, c.measure(b.Label, sizeLabel).Width())
	}
	tickH := c.measure("0", sizeTick).Height()
	nameH := c.measure(layout.XLabel, sizeLabel).Height()
	titleH := c.measure(layout.Title, sizeTitle).Height()

	plot := chart.Box{
		Top:    margin + titleH + 20,
		Left:   margin + labelW + 12,
		Right:  c.width - margin - 20,
		Bottom: c.height - margin - nameH - tickH - 20,
	}

	xmax := layout.XMax
	if xmax <= 0 {
		xmax = 1
	}
	scale := func(v float64) int {
		v = math.Max(0, math.Min(v, xmax))
		return plot.Left + int(math.Round(v/xmax*float64(plot.Width())))
	}

	ticks, step := niceTicks(xmax, 5)
	for _, t := range ticks {
		x := scale(t)
		c.line(x, plot.Top, x, plot.Bottom, colorGrid, 1, nil)
		c.text(tickLabel(t, step, layout.Suffix), x, plot.Bottom+8,
			textStyle{size: sizeTick, color: colorText, align: alignCenter, valign: alignTop})
	}
	c.line(plot.Left, plot.Top, plot.Left, plot.Bottom, colorAxis, 1, nil)
	c.line(plot.Left, plot.Bottom, plot.Right, plot.Bottom, colorAxis, 1, nil)
	c.text(layout.XLabel, (plot.Left+plot.Right)/2, c.height-margin,
		textStyle{size: sizeLabel, color: colorText, align: alignCenter, valign: alignBottom})

	slot := float64(plot.Height()) / float64(len(layout.Bars))
	half := int(slot * 0.4)
	center := func(i int) int {
		return plot.Bottom - int(math.Round((float64(i)+0.5)*slot))
	}

	for i, b := range layout.Bars {
		y := center(i)
		end := scale(b.Value)
		if end > plot.Left {
			c.fillRect(chart.Box{Left: plot.Left, Top: y - half, Right: end, Bottom: y + half}, b.Color)
		}
		c.text(b.Label, plot.Left-8, y,
			textStyle{size: sizeLabel, color: colorText, align: alignRight, valign: alignMiddle})
		c.text(b.Text, end+6, y,
			textStyle{size: sizeTick, color: colorText, valign: alignMiddle})
	}

	if layout.Divider > 0 && layout.Divider < len(layout.Bars) {
		y := plot.Bottom - int(math.Round(float64(layout.Divider)*slot))
		c.line(plot.Left, y, plot.Right, y, colorDivider, 1.5, dividerDash)
	}

	if co := layout.Callout; co != nil && co.Bar >= 0 && co.Bar < len(layout.Bars) {
		y := center(co.Bar)
		end := scale(layout.Bars[co.Bar].Value)
		tb := c.measure(co.Text, sizeLabel)
		tx := max(plot.Left+tb.Width()+10, end-40)
		ty := max(plot.Top+tb.Height(), y-half-int(slot*0.3))
		c.text(co.Text, tx-8, ty,
			textStyle{size: sizeLabel, color: colorRed, align: alignRight, valign: alignMiddle})
		c.arrow(tx, ty, end, y-half/2, colorRed, 1.5)
	}

	c.legend(layout.Legend, plot, lowerRight)
	return c.save(w)
}

func (r *Renderer) drawVBar(w io.Writer, layout vbarChart) error {
	if len(layout.Bars) == 0 {
		return ErrNoData
	}
	c, err := r.newCanvas()
	if err != nil {
		return err
	}
	c.title(layout.Title)

	ymax := layout.YMax
	if ymax <= 0 {
		ymax = 1
	}
	ticks, step := niceTicks(ymax, 5)

	tickW := 0
	for _, t := range ticks {
		tickW = max(tickW, c.measure(tickLabel(t, step, layout.Suffix), sizeTick).Width())
	}
	labelH := 0
	for _, b := range layout.Bars {
		m := c.measure(b.Label, sizeLabel)
		if layout.RotateLabels {
			labelH = max(labelH, int(float64(m.Width())*math.Sin(math.Pi/4))+m.Height())
		} else {
			labelH = max(labelH, m.Height())
		}
	}
	nameH := c.measure("Hg", sizeLabel).Height()
	titleH := c.measure(layout.Title, sizeTitle).Height()

	plot := chart.Box{
		Top:    margin + titleH + 30,
		Left:   margin + nameH + 12 + tickW + 10,
		Right:  c.width - margin - 10,
		Bottom: c.height - margin - nameH - labelH - 24,
	}

	scale := func(v float64) int {
		v = math.Max(0, math.Min(v, ymax))
		return plot.Bottom - int(math.Round(v/ymax*float64(plot.Height())))
	}

	for _, t := range ticks {
		y := scale(t)
		c.line(plot.Left, y, plot.Right, y, colorGrid, 1, nil)
		c.text(tickLabel(t, step, layout.Suffix), plot.Left-8, y,
			textStyle{size: sizeTick, color: colorText, align: alignRight, valign: alignMiddle})
	}
	c.line(plot.Left, plot.Top, plot.Left, plot.Bottom, colorAxis, 1, nil)
	c.line(plot.Left, plot.Bottom, plot.Right, plot.Bottom, colorAxis, 1, nil)

	c.text(layout.XLabel, (plot.Left+plot.Right)/2, c.height-margin,
		textStyle{size: sizeLabel, color: colorText, align: alignCenter, valign: alignBottom})
	if layout.YLabel != "" {
		yw := c.measure(layout.YLabel, sizeLabel).Width()
		c.rotatedText(layout.YLabel, margin+nameH, (plot.Top+plot.Bottom)/2+yw/2, 90,
			textStyle{size: sizeLabel, color: colorText})
	}

	slot := float64(plot.Width()) / float64(len(layout.Bars))
	half := int(slot * 0.3)

	for i, b := range layout.Bars {
		x := plot.Left + int(math.Round((float64(i)+0.5)*slot))
		top := scale(b.Value)
		if top < plot.Bottom {
			c.fillRect(chart.Box{Left: x - half, Top: top, Right: x + half, Bottom: plot.Bottom}, b.Color)
		}

		if layout.RotateLabels {
			m := c.measure(b.Label, sizeLabel)
			d := float64(m.Width()) * math.Cos(math.Pi/4)
			c.rotatedText(b.Label, x-int(d), plot.Bottom+10+int(d)+m.Height()/2, 45,
				textStyle{size: sizeLabel, color: colorText})
		} else {
			c.text(b.Label, x, plot.Bottom+8,
				textStyle{size: sizeLabel, color: colorText, align: alignCenter, valign: alignTop})
		}

		if layout.RotateText {
			c.rotatedText(b.Text, x-4, top-6, 45, textStyle{size: sizeSmall, color: colorText})
		} else {
			c.text(b.Text, x, top-6,
				textStyle{size: sizeTick, color: colorText, align: alignCenter, valign: alignBottom})
		}

		if b.Inner != "" {
			m := c.measure(b.Inner, sizeSmall)
			if plot.Bottom-top > m.Height()+8 && 2*half > m.Width()+4 {
				c.text(b.Inner, x, (top+plot.Bottom)/2,
					textStyle{size: sizeSmall, color: drawing.ColorWhite, align: alignCenter, valign: alignMiddle})
			}
		}
	}

	c.legend(layout.Legend, plot, layout.LegendAt)
	return c.save(w)
}
