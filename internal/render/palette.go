package render

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorRed    = drawing.ColorFromHex("e74c3c")
	colorBlue   = drawing.ColorFromHex("3498db")
	colorGreen  = drawing.ColorFromHex("2ecc71")
	colorOrange = drawing.ColorFromHex("f39c12")
	colorGray   = drawing.ColorFromHex("95a5a6")

	colorBackground = drawing.ColorWhite
	colorText       = drawing.ColorFromHex("2c3e50")
	colorAxis       = drawing.ColorFromHex("7f8c8d")
	colorGrid       = drawing.ColorFromHex("e5e8ea")
	colorDivider    = drawing.ColorFromHex("808080")

	blueRampLight = drawing.ColorFromHex("c6dbef")
	blueRampDark  = drawing.ColorFromHex("2171b5")
)

// Tier assigns a color to rates strictly above a threshold.
type Tier struct {
	Above float64
	Color drawing.Color
	Label string
}

// Tiers is evaluated in order; the first tier whose threshold the rate
// exceeds wins. The last tier should use math.Inf(-1) as a catch-all.
type Tiers []Tier

// Color returns the color for rate.
func (ts Tiers) Color(rate float64) drawing.Color {
	for _, t := range ts {
		if rate > t.Above {
			return t.Color
		}
	}
	return colorGray
}

// Legend returns one legend entry per tier.
func (ts Tiers) Legend() []legendEntry {
	out := make([]legendEntry, len(ts))
	for i, t := range ts {
		out[i] = legendEntry{Label: t.Label, Color: t.Color}
	}
	return out
}

// MarketTiers colors the by-market chart.
var MarketTiers = Tiers{
	{Above: 2, Color: colorRed, Label: "Elevated (>2%)"},
	{Above: 0.5, Color: colorBlue, Label: "Moderate (0.5-2%)"},
	{Above: math.Inf(-1), Color: colorGreen, Label: "Normal (<0.5%)"},
}

// SizeTiers colors the by-size chart.
var SizeTiers = Tiers{
	{Above: 10, Color: colorRed, Label: "High (>10%)"},
	{Above: 5, Color: colorOrange, Label: "Elevated (5-10%)"},
	{Above: math.Inf(-1), Color: colorBlue, Label: "Baseline (<5%)"},
}

// GapRamp colors the eight gap buckets, shortest gap first.
var GapRamp = []drawing.Color{
	colorRed, colorRed,
	colorOrange, colorOrange,
	colorBlue, colorBlue, colorBlue,
	colorGreen,
}

// rampColor returns the GapRamp color for bucket i, clamping to the last.
func rampColor(i int) drawing.Color {
	if i < len(GapRamp) {
		return GapRamp[i]
	}
	return GapRamp[len(GapRamp)-1]
}

// lerp blends from a to b; t is clamped to [0, 1].
func lerp(a, b drawing.Color, t float64) drawing.Color {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// withAlpha returns c with alpha a in [0, 1].
func withAlpha(c drawing.Color, a float64) drawing.Color {
	c.A = uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
	return c
}
