package render

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rickgao/kalshi-washcharts/internal/analysis"
	"github.com/rickgao/kalshi-washcharts/internal/config"
	"github.com/rickgao/kalshi-washcharts/internal/market"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(config.OutputConfig{Dir: filepath.Join(t.TempDir(), "charts"), Width: 800, Height: 500, DPI: 100}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

// checkPNG asserts path holds a PNG of the renderer's size.
func checkPNG(t *testing.T, r *Renderer, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if cfg.Width != r.width || cfg.Height != r.height {
		t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, r.width, r.height)
	}
}

func TestTiersColor(t *testing.T) {
	tests := []struct {
		tiers Tiers
		rate  float64
		want  string
	}{
		{MarketTiers, 2.5, "red"},
		{MarketTiers, 2.0, "blue"},
		{MarketTiers, 0.51, "blue"},
		{MarketTiers, 0.5, "green"},
		{MarketTiers, 0, "green"},
		{SizeTiers, 10.01, "red"},
		{SizeTiers, 10, "orange"},
		{SizeTiers, 5, "blue"},
	}
	names := map[string]drawing.Color{"red": colorRed, "blue": colorBlue, "green": colorGreen, "orange": colorOrange}

	for _, tt := range tests {
		got := tt.tiers.Color(tt.rate)
		if got != names[tt.want] {
			t.Errorf("Color(%v) = %v, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestRampColor(t *testing.T) {
	if rampColor(0) != colorRed || rampColor(3) != colorOrange || rampColor(7) != colorGreen {
		t.Error("ramp colors do not match bucket order")
	}
	if rampColor(20) != colorGreen {
		t.Error("rampColor beyond the ramp should clamp to the last color")
	}
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		hi       float64
		wantStep float64
		wantLast float64
	}{
		{hi: 10, wantStep: 2, wantLast: 10},
		{hi: 3.6, wantStep: 1, wantLast: 3},
		{hi: 0.9, wantStep: 0.2, wantLast: 0.8},
		{hi: 120000, wantStep: 50000, wantLast: 100000},
	}
	for _, tt := range tests {
		ticks, step := niceTicks(tt.hi, 5)
		if math.Abs(step-tt.wantStep) > 1e-9 {
			t.Errorf("niceTicks(%v) step = %v, want %v", tt.hi, step, tt.wantStep)
		}
		if ticks[0] != 0 {
			t.Errorf("niceTicks(%v) first = %v, want 0", tt.hi, ticks[0])
		}
		if last := ticks[len(ticks)-1]; math.Abs(last-tt.wantLast) > 1e-9 {
			t.Errorf("niceTicks(%v) last = %v, want %v", tt.hi, last, tt.wantLast)
		}
	}
}

func TestTickLabel(t *testing.T) {
	if got := tickLabel(2, 1, "%"); got != "2%" {
		t.Errorf("tickLabel = %q, want 2%%", got)
	}
	if got := tickLabel(0.4, 0.2, ""); got != "0.4" {
		t.Errorf("tickLabel = %q, want 0.4", got)
	}
}

func TestHourName(t *testing.T) {
	tests := map[int]string{0: "12 AM", 4: "4 AM", 12: "12 PM", 23: "11 PM"}
	for h, want := range tests {
		if got := hourName(h); got != want {
			t.Errorf("hourName(%d) = %q, want %q", h, got, want)
		}
	}
}

func TestRatioLabel(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{21.4, "21x higher"},
		{4, "4.0x higher"},
		{0.5, "2.0x lower"},
		{0, "no repetitive crypto trades"},
	}
	for _, tt := range tests {
		if got := ratioLabel(tt.ratio); got != tt.want {
			t.Errorf("ratioLabel(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestMarketChart(t *testing.T) {
	rows := []analysis.MarketRate{
		{Market: "Bitcoin Daily", Counts: analysis.Counts{Total: 1000, Repetitive: 50}},
		{Market: "NBA", Counts: analysis.Counts{Total: 1000, Repetitive: 10}},
		{Market: "NFL", Counts: analysis.Counts{Total: 1000, Repetitive: 1}},
	}
	layout := marketChart("t", rows)

	if len(layout.Bars) != 3 {
		t.Fatalf("bars = %d, want 3", len(layout.Bars))
	}
	// Bars run bottom to top, so the highest rate is last.
	if top := layout.Bars[2]; top.Label != "Bitcoin Daily" || top.Color != colorRed || top.Text != "5.00%" {
		t.Errorf("top bar = %+v, want Bitcoin Daily red 5.00%%", top)
	}
	if layout.Bars[1].Color != colorBlue || layout.Bars[0].Color != colorGreen {
		t.Error("tier colors not applied")
	}
	if math.Abs(layout.XMax-6) > 1e-9 {
		t.Errorf("XMax = %v, want 6", layout.XMax)
	}
}

func TestComparisonChart(t *testing.T) {
	cmp := analysis.Comparison{
		Rows: []analysis.ComparisonRow{
			{Market: "NFL", Category: market.CategorySports, Counts: analysis.Counts{Total: 100, Repetitive: 1}},
			{Market: "NBA", Category: market.CategorySports, Counts: analysis.Counts{Total: 100, Repetitive: 3}},
			{Market: "Bitcoin Daily", Category: market.CategoryCrypto, Counts: analysis.Counts{Total: 100, Repetitive: 8}},
		},
		Sports: analysis.Counts{Total: 200, Repetitive: 4},
		Crypto: analysis.Counts{Total: 100, Repetitive: 8},
	}
	layout := comparisonChart("t", cmp)

	if layout.Divider != 2 {
		t.Errorf("Divider = %d, want 2", layout.Divider)
	}
	if layout.Bars[2].Color != colorRed || layout.Bars[0].Color != colorBlue {
		t.Error("category colors not applied")
	}
	if layout.Callout == nil {
		t.Fatal("Callout = nil, want ratio callout")
	}
	if layout.Callout.Bar != 2 || layout.Callout.Text != "4.0x higher" {
		t.Errorf("Callout = %+v, want bar 2 4.0x higher", *layout.Callout)
	}
}

func TestComparisonChart_NoSportsNoCallout(t *testing.T) {
	cmp := analysis.Comparison{
		Rows: []analysis.ComparisonRow{
			{Market: "Bitcoin Daily", Category: market.CategoryCrypto, Counts: analysis.Counts{Total: 100, Repetitive: 8}},
		},
		Crypto: analysis.Counts{Total: 100, Repetitive: 8},
	}
	if layout := comparisonChart("t", cmp); layout.Callout != nil {
		t.Errorf("Callout = %+v, want nil without sports baseline", *layout.Callout)
	}
}

func TestVolumeValues(t *testing.T) {
	rows := []analysis.VolumeSlice{
		{Market: "NFL", Volume: 600, Share: 60},
		{Market: "Bitcoin Daily", Volume: 200, Share: 20},
		{Market: "Fed Decisions", Volume: 150, Share: 15},
		{Market: "Other", Volume: 50, Share: 5, Synthetic: true},
	}
	values := volumeValues(rows, "Bitcoin Daily")
	if len(values) != 4 {
		t.Fatalf("values = %d, want 4", len(values))
	}
	if values[1].Style.FillColor != colorRed || values[1].Style.StrokeWidth <= values[0].Style.StrokeWidth {
		t.Error("highlight slice should be red with a heavier outline")
	}
	if values[2].Style.FillColor != colorOrange {
		t.Error("Fed Decisions slice should be orange")
	}
	if values[3].Style.FillColor != colorGray {
		t.Error("Other slice should be grey")
	}
	if values[0].Label != "NFL 60.0%" {
		t.Errorf("label = %q, want NFL 60.0%%", values[0].Label)
	}
}

func TestSizeChart(t *testing.T) {
	r := newTestRenderer(t)
	rows := []analysis.SizeRate{
		{Size: 1, Counts: analysis.Counts{Total: 12345, Repetitive: 1500}},
		{Size: 2, Counts: analysis.Counts{}},
	}
	layout, ok := r.sizeChart("t", rows)
	if !ok {
		t.Fatal("ok = false, want true")
	}
	if layout.Bars[0].Inner != "12,345" {
		t.Errorf("Inner = %q, want 12,345", layout.Bars[0].Inner)
	}
	if layout.Bars[0].Color != colorRed {
		t.Errorf("12.2%% should use the top tier")
	}
	if layout.Bars[1].Text != "n/a" || layout.Bars[1].Value != 0 {
		t.Errorf("empty size bar = %+v, want n/a zero bar", layout.Bars[1])
	}
}

func TestRenderAllCharts(t *testing.T) {
	r := newTestRenderer(t)
	hour := 4
	month := func(m time.Month) time.Time { return time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC) }

	hourly := make([]analysis.HourlyShare, 24)
	for h := range hourly {
		hourly[h] = analysis.HourlyShare{Hour: h, Primary: int64(h + 1), Secondary: int64(24 - h)}
		hourly[h].PrimaryPct = float64(h+1) / 300 * 100
		hourly[h].SecondaryPct = float64(24-h) / 300 * 100
	}
	gaps := make([]analysis.GapCount, 0, 8)
	for i, b := range analysis.GapBuckets() {
		gaps = append(gaps, analysis.GapCount{Bucket: b, Count: int64(100 * (i + 1))})
	}

	renders := map[string]func() (string, error){
		"hourly_pattern.png": func() (string, error) {
			return r.HourlyPattern("hourly_pattern.png", "Hourly", hourly, HourlyOptions{
				Primary: "Bitcoin Daily", Secondary: "NFL", XLabel: "Hour", Highlight: &hour,
			})
		},
		"monthly_trend.png": func() (string, error) {
			return r.MonthlyTrend("monthly_trend.png", "Monthly", []analysis.MonthlyRate{
				{Month: month(1), Counts: analysis.Counts{Total: 5000, Repetitive: 100}},
				{Month: month(2), Counts: analysis.Counts{Total: 8000, Repetitive: 400}},
			})
		},
		"repetitive_by_market.png": func() (string, error) {
			return r.RepetitiveByMarket("repetitive_by_market.png", "Markets", []analysis.MarketRate{
				{Market: "Bitcoin Daily", Counts: analysis.Counts{Total: 1000, Repetitive: 50}},
				{Market: "NFL", Counts: analysis.Counts{Total: 1000, Repetitive: 2}},
			})
		},
		"btc_size_distribution.png": func() (string, error) {
			return r.SizeDistribution("btc_size_distribution.png", "Sizes", []analysis.SizeRate{
				{Size: 1, Counts: analysis.Counts{Total: 1000, Repetitive: 150}},
				{Size: 2, Counts: analysis.Counts{Total: 500, Repetitive: 10}},
			})
		},
		"timing_distribution.png": func() (string, error) {
			return r.TimingDistribution("timing_distribution.png", "Gaps", gaps)
		},
		"volume_share.png": func() (string, error) {
			return r.VolumeShare("volume_share.png", "Volume", []analysis.VolumeSlice{
				{Market: "NFL", Volume: 700, Share: 70},
				{Market: "Bitcoin Daily", Volume: 300, Share: 30},
			}, "Bitcoin Daily")
		},
		"sports_vs_crypto.png": func() (string, error) {
			return r.SportsVsCrypto("sports_vs_crypto.png", "Compare", analysis.Comparison{
				Rows: []analysis.ComparisonRow{
					{Market: "NFL", Category: market.CategorySports, Counts: analysis.Counts{Total: 100, Repetitive: 1}},
					{Market: "Bitcoin Daily", Category: market.CategoryCrypto, Counts: analysis.Counts{Total: 100, Repetitive: 8}},
				},
				Sports: analysis.Counts{Total: 100, Repetitive: 1},
				Crypto: analysis.Counts{Total: 100, Repetitive: 8},
			})
		},
	}

	for file, render := range renders {
		t.Run(file, func(t *testing.T) {
			path, err := render()
			if err != nil {
				t.Fatalf("render error = %v", err)
			}
			if want := filepath.Join(r.Dir(), file); path != want {
				t.Errorf("path = %q, want %q", path, want)
			}
			checkPNG(t, r, path)
		})
	}
}

func TestRenderEmptyWritesPlaceholder(t *testing.T) {
	r := newTestRenderer(t)

	renders := map[string]func() (string, error){
		"hourly": func() (string, error) {
			return r.HourlyPattern("hourly.png", "Hourly", make([]analysis.HourlyShare, 24), HourlyOptions{})
		},
		"monthly": func() (string, error) { return r.MonthlyTrend("monthly.png", "Monthly", nil) },
		"market":  func() (string, error) { return r.RepetitiveByMarket("market.png", "Markets", nil) },
		"size": func() (string, error) {
			return r.SizeDistribution("size.png", "Sizes", []analysis.SizeRate{{Size: 1}})
		},
		"timing": func() (string, error) {
			return r.TimingDistribution("timing.png", "Gaps", []analysis.GapCount{{Bucket: analysis.GapBuckets()[0]}})
		},
		"volume":  func() (string, error) { return r.VolumeShare("volume.png", "Volume", nil, "Bitcoin Daily") },
		"compare": func() (string, error) { return r.SportsVsCrypto("compare.png", "Compare", analysis.Comparison{}) },
	}

	for name, render := range renders {
		t.Run(name, func(t *testing.T) {
			path, err := render()
			if err != nil {
				t.Fatalf("render error = %v, want placeholder", err)
			}
			checkPNG(t, r, path)
		})
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	r := newTestRenderer(t)
	if _, err := r.RepetitiveByMarket("m.png", "Markets", nil); err != nil {
		t.Fatalf("render error = %v", err)
	}
	entries, err := os.ReadDir(r.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "m.png" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want [m.png]", names)
	}
}

func TestPlaceholderImage(t *testing.T) {
	img := placeholderImage(400, 200, "Empty chart")
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("bounds = %v, want 400x200", b)
	}
	// Some pixel must differ from the white background.
	var inked bool
	for i := 0; i < len(img.Pix) && !inked; i += 4 {
		inked = img.Pix[i] != 0xff
	}
	if !inked {
		t.Error("placeholder has no text drawn")
	}
}

// pathBounds records the extent of every path point a chart draws.
type pathBounds struct {
	chart.Renderer
	minX, minY, maxX, maxY int
}

func (p *pathBounds) track(x, y int) {
	p.minX, p.maxX = min(p.minX, x), max(p.maxX, x)
	p.minY, p.maxY = min(p.minY, y), max(p.maxY, y)
}

func (p *pathBounds) MoveTo(x, y int) {
	p.track(x, y)
	p.Renderer.MoveTo(x, y)
}

func (p *pathBounds) LineTo(x, y int) {
	p.track(x, y)
	p.Renderer.LineTo(x, y)
}

// renderBounds renders ch to PNG and returns the extent of its paths.
func renderBounds(t *testing.T, ch *chart.Chart) *pathBounds {
	t.Helper()
	var bounds *pathBounds
	provider := func(w, h int) (chart.Renderer, error) {
		inner, err := chart.PNG(w, h)
		if err != nil {
			return nil, err
		}
		bounds = &pathBounds{Renderer: inner, minX: w, minY: h}
		return bounds, nil
	}
	var buf bytes.Buffer
	if err := ch.Render(provider, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return bounds
}

func TestMonthlyChart_VolumeBarsStayOnCanvas(t *testing.T) {
	r := newTestRenderer(t)
	rows := make([]analysis.MonthlyRate, 3)
	for i := range rows {
		rows[i] = analysis.MonthlyRate{
			Month:  time.Date(2025, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Counts: analysis.Counts{Total: 500_000, Repetitive: 10_000},
		}
	}

	ch, err := r.monthlyChart("Monthly", rows)
	if err != nil {
		t.Fatalf("monthlyChart() error = %v", err)
	}
	if n := len(ch.YAxisSecondary.Ticks); n != 0 {
		t.Errorf("secondary axis ticks = %d, want ticks carried by the range", n)
	}
	if hi := ch.YAxisSecondary.Range.GetMax(); hi < 500 {
		t.Errorf("secondary range max = %v, want >= 500", hi)
	}

	b := renderBounds(t, ch)
	if b.minX < 0 || b.minY < 0 || b.maxX > r.width || b.maxY > r.height {
		t.Errorf("paths span (%d,%d)-(%d,%d), want within %dx%d", b.minX, b.minY, b.maxX, b.maxY, r.width, r.height)
	}
}

func TestMonthlyTrend_SingleMonth(t *testing.T) {
	r := newTestRenderer(t)
	rows := []analysis.MonthlyRate{{
		Month:  time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		Counts: analysis.Counts{Total: 1, Repetitive: 0},
	}}

	path, err := r.MonthlyTrend("monthly_trend.png", "Monthly", rows)
	if err != nil {
		t.Fatalf("MonthlyTrend() error = %v", err)
	}
	checkPNG(t, r, path)
}

func TestHourlyChart_AxisBounds(t *testing.T) {
	r := newTestRenderer(t)
	rows := make([]analysis.HourlyShare, 24)
	for h := range rows {
		rows[h] = analysis.HourlyShare{Hour: h, Primary: 1, PrimaryPct: 100.0 / 24}
	}

	ch, err := r.hourlyChart("Hourly", rows, HourlyOptions{Primary: "Bitcoin Daily", Secondary: "NFL"})
	if err != nil {
		t.Fatalf("hourlyChart() error = %v", err)
	}
	if len(ch.XAxis.Ticks) != 0 || len(ch.YAxis.Ticks) != 0 {
		t.Error("axis ticks set on the axis, want them on the range")
	}
	if lo, hi := ch.XAxis.Range.GetMin(), ch.XAxis.Range.GetMax(); lo != 0 || hi != 23 {
		t.Errorf("x range = [%v, %v], want [0, 23]", lo, hi)
	}
	if name := ch.Series[0].GetName(); name != "Overnight (US)" {
		t.Errorf("first series = %q, want the overnight band", name)
	}
	if ticks := ch.XAxis.Range.(chart.TicksProvider).GetTicks(nil, chart.Style{}, nil); len(ticks) != 12 {
		t.Errorf("hour ticks = %d, want 12", len(ticks))
	}

	b := renderBounds(t, ch)
	if b.minX < 0 || b.minY < 0 || b.maxX > r.width || b.maxY > r.height {
		t.Errorf("paths span (%d,%d)-(%d,%d), want within %dx%d", b.minX, b.minY, b.maxX, b.maxY, r.width, r.height)
	}
}
