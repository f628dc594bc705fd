package render

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceStep picks a 1, 2 or 5 times power-of-ten step giving about n
// intervals over span.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n < 1 {
		return 1
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	var nice float64
	switch norm := raw / mag; {
	case norm <= 1:
		nice = 1
	case norm <= 2:
		nice = 2
	case norm <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * mag
}

// niceTicks returns tick values from 0 up to at most hi.
func niceTicks(hi float64, n int) (ticks []float64, step float64) {
	step = niceStep(hi, n)
	for i := 0; ; i++ {
		v := float64(i) * step
		if v > hi*(1+1e-9) {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks, step
}

// tickLabel formats v with as many decimals as step needs.
func tickLabel(v, step float64, suffix string) string {
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	return fmt.Sprintf("%.*f%s", decimals, v, suffix)
}

// axisTicks builds go-chart ticks for a 0..hi axis.
func axisTicks(hi float64, n int, suffix string) []chart.Tick {
	values, step := niceTicks(hi, n)
	ticks := make([]chart.Tick, len(values))
	for i, v := range values {
		ticks[i] = chart.Tick{Value: v, Label: tickLabel(v, step, suffix)}
	}
	return ticks
}

// headroom returns hi scaled by factor, or fallback when hi is not positive.
func headroom(hi, factor, fallback float64) float64 {
	if hi <= 0 || math.IsNaN(hi) {
		return fallback
	}
	return hi * factor
}

// fixedRange is a continuous range that carries its own ticks. go-chart
// resets an axis range to the span of Axis.Ticks (and sizes the secondary
// axis from the primary axis ticks), so ticks must travel on the range.
type fixedRange struct {
	*chart.ContinuousRange
	ticks []chart.Tick
}

func newFixedRange(lo, hi float64, ticks []chart.Tick) *fixedRange {
	return &fixedRange{
		ContinuousRange: &chart.ContinuousRange{Min: lo, Max: hi},
		ticks:           ticks,
	}
}

// GetTicks implements chart.TicksProvider.
func (f *fixedRange) GetTicks(chart.Renderer, chart.Style, chart.ValueFormatter) []chart.Tick {
	return f.ticks
}
