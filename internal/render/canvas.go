package render

import (
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Font sizes in points.
const (
	sizeTitle  = 14
	sizeLabel  = 10
	sizeTick   = 9
	sizeLegend = 9
	sizeSmall  = 8
)

const margin = 24

type hAlign int

const (
	alignLeft hAlign = iota
	alignCenter
	alignRight
)

type vAlign int

const (
	alignTop vAlign = iota
	alignMiddle
	alignBottom
)

type textStyle struct {
	size   float64
	color  drawing.Color
	align  hAlign
	valign vAlign
}

// canvas wraps a go-chart Renderer with box, line and aligned-text helpers.
type canvas struct {
	r      chart.Renderer
	font   *truetype.Font
	width  int
	height int
}

func (c *canvas) save(w io.Writer) error {
	return c.r.Save(w)
}

func (c *canvas) path(b chart.Box) {
	c.r.MoveTo(b.Left, b.Top)
	c.r.LineTo(b.Right, b.Top)
	c.r.LineTo(b.Right, b.Bottom)
	c.r.LineTo(b.Left, b.Bottom)
	c.r.Close()
}

func (c *canvas) fillRect(b chart.Box, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.path(b)
	c.r.Fill()
}

func (c *canvas) strokeRect(b chart.Box, stroke drawing.Color, width float64) {
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.SetStrokeDashArray(nil)
	c.path(b)
	c.r.Stroke()
}

func (c *canvas) line(x1, y1, x2, y2 int, stroke drawing.Color, width float64, dash []float64) {
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.SetStrokeDashArray(dash)
	c.r.MoveTo(x1, y1)
	c.r.LineTo(x2, y2)
	c.r.Stroke()
	c.r.SetStrokeDashArray(nil)
}

// arrow draws a line from (x1, y1) with a head at (x2, y2).
func (c *canvas) arrow(x1, y1, x2, y2 int, stroke drawing.Color, width float64) {
	c.line(x1, y1, x2, y2, stroke, width, nil)
	angle := math.Atan2(float64(y2-y1), float64(x2-x1))
	const head = 10.0
	for _, d := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
		hx := x2 + int(math.Round(head*math.Cos(angle+d)))
		hy := y2 + int(math.Round(head*math.Sin(angle+d)))
		c.line(x2, y2, hx, hy, stroke, width, nil)
	}
}

func (c *canvas) measure(s string, size float64) chart.Box {
	c.r.SetFont(c.font)
	c.r.SetFontSize(size)
	return c.r.MeasureText(s)
}

// text draws s anchored at (x, y) per the style's alignment.
func (c *canvas) text(s string, x, y int, st textStyle) {
	if s == "" {
		return
	}
	b := c.measure(s, st.size)
	c.r.SetFontColor(st.color)

	switch st.align {
	case alignCenter:
		x -= b.Width() / 2
	case alignRight:
		x -= b.Width()
	}
	// Text draws from the baseline.
	switch st.valign {
	case alignTop:
		y += b.Height()
	case alignMiddle:
		y += b.Height() / 2
	}
	c.r.Text(s, x, y)
}

// rotatedText draws s with its baseline starting at (x, y), turned by
// degrees counter-clockwise.
func (c *canvas) rotatedText(s string, x, y int, degrees float64, st textStyle) {
	if s == "" {
		return
	}
	c.measure(s, st.size)
	c.r.SetFontColor(st.color)
	c.r.SetTextRotation(-degrees * math.Pi / 180)
	c.r.Text(s, x, y)
	c.r.ClearTextRotation()
}

func (c *canvas) title(s string) {
	c.text(s, c.width/2, margin, textStyle{size: sizeTitle, color: colorText, align: alignCenter, valign: alignTop})
}

type legendEntry struct {
	Label string
	Color drawing.Color
}

type corner int

const (
	upperRight corner = iota
	upperLeft
	lowerRight
)

// legend draws a boxed key inside plot at the given corner.
func (c *canvas) legend(entries []legendEntry, plot chart.Box, at corner) {
	if len(entries) == 0 {
		return
	}
	lineH := c.measure("Hg", sizeLegend).Height() + 10
	swatch := lineH - 10
	textW := 0
	for _, e := range entries {
		textW = max(textW, c.measure(e.Label, sizeLegend).Width())
	}
	w := 8 + swatch + 8 + textW + 10
	h := lineH*len(entries) + 8

	var box chart.Box
	switch at {
	case upperLeft:
		box = chart.Box{Left: plot.Left + 10, Top: plot.Top + 10}
	case lowerRight:
		box = chart.Box{Left: plot.Right - w - 10, Top: plot.Bottom - h - 10}
	default:
		box = chart.Box{Left: plot.Right - w - 10, Top: plot.Top + 10}
	}
	box.Right = box.Left + w
	box.Bottom = box.Top + h

	c.fillRect(box, withAlpha(colorBackground, 0.9))
	c.strokeRect(box, colorGrid, 1)

	for i, e := range entries {
		mid := box.Top + 4 + i*lineH + lineH/2
		sw := chart.Box{Left: box.Left + 8, Top: mid - swatch/2, Right: box.Left + 8 + swatch, Bottom: mid + swatch/2}
		c.fillRect(sw, e.Color)
		c.text(e.Label, sw.Right+8, mid, textStyle{size: sizeLegend, color: colorText, valign: alignMiddle})
	}
}

// legendElement adapts legend to go-chart's Elements hook, which is called
// with the plot area after series are drawn.
func legendElement(font *truetype.Font, entries []legendEntry, at corner) chart.Renderable {
	return func(r chart.Renderer, plot chart.Box, _ chart.Style) {
		c := &canvas{r: r, font: font}
		c.legend(entries, plot, at)
	}
}
