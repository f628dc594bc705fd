package report

import (
	"fmt"
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/analysis"
	"github.com/rickgao/kalshi-washcharts/internal/config"
	"github.com/rickgao/kalshi-washcharts/internal/market"
	"github.com/rickgao/kalshi-washcharts/internal/render"
)

// Drawer renders query results to image files. *render.Renderer
// implements it.
type Drawer interface {
	RepetitiveByMarket(file, title string, rows []analysis.MarketRate) (string, error)
	SizeDistribution(file, title string, rows []analysis.SizeRate) (string, error)
	HourlyPattern(file, title string, rows []analysis.HourlyShare, opts render.HourlyOptions) (string, error)
	MonthlyTrend(file, title string, rows []analysis.MonthlyRate) (string, error)
	TimingDistribution(file, title string, rows []analysis.GapCount) (string, error)
	VolumeShare(file, title string, rows []analysis.VolumeSlice, highlight string) (string, error)
	SportsVsCrypto(file, title string, cmp analysis.Comparison) (string, error)
}

// Env is everything a chart needs to run.
type Env struct {
	Data     *analysis.Dataset
	Draw     Drawer
	Analysis config.AnalysisConfig
	Location *time.Location
	Year     int // Shown in titles
}

// NewEnv builds an Env, resolving the time zone and title year from cfg.
func NewEnv(data *analysis.Dataset, draw Drawer, cfg config.AnalysisConfig) (*Env, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}
	return &Env{Data: data, Draw: draw, Analysis: cfg, Location: loc, Year: start.Year()}, nil
}

// Chart is one query/renderer pair.
type Chart struct {
	Name   string
	File   string
	Render func(env *Env, file string) (string, error)
}

// Charts lists every chart, in default run order.
var Charts = []Chart{
	{Name: "repetitive_by_market", File: "repetitive_by_market.png", Render: repetitiveByMarket},
	{Name: "btc_size_distribution", File: "btc_size_distribution.png", Render: btcSizeDistribution},
	{Name: "hourly_pattern", File: "hourly_pattern.png", Render: hourlyPattern},
	{Name: "monthly_trend", File: "monthly_trend.png", Render: monthlyTrend},
	{Name: "timing_distribution", File: "timing_distribution.png", Render: timingDistribution},
	{Name: "volume_share", File: "volume_share.png", Render: volumeShare},
	{Name: "sports_vs_crypto", File: "sports_vs_crypto.png", Render: sportsVsCrypto},
}

// Names returns the chart names in default order.
func Names() []string {
	names := make([]string, len(Charts))
	for i, c := range Charts {
		names[i] = c.Name
	}
	return names
}

// Select returns the charts named, in the order given. No names selects
// every chart.
func Select(charts []Chart, names []string) ([]Chart, error) {
	if len(names) == 0 {
		return charts, nil
	}
	byName := make(map[string]Chart, len(charts))
	for _, c := range charts {
		byName[c.Name] = c
	}
	selected := make([]Chart, 0, len(names))
	for _, n := range names {
		c, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown chart %q", n)
		}
		selected = append(selected, c)
	}
	return selected, nil
}

func repetitiveByMarket(env *Env, file string) (string, error) {
	rows := analysis.RepetitiveByMarket(env.Data.Flagged(), env.Analysis.MinMarketTrades)
	title := fmt.Sprintf("Repetitive Trading Patterns by Market Type (%d)", env.Year)
	return env.Draw.RepetitiveByMarket(file, title, rows)
}

func btcSizeDistribution(env *Env, file string) (string, error) {
	btc := analysis.FlaggedInMarket(env.Data.Flagged(), market.BitcoinDaily)
	rows := analysis.RepetitiveBySize(btc, analysis.DefaultTradeSizes)
	return env.Draw.SizeDistribution(file, "Bitcoin Daily: Repetitive Rate by Trade Size", rows)
}

func hourlyPattern(env *Env, file string) (string, error) {
	rows := analysis.HourlyPattern(env.Data.Trades(), env.Location, market.BitcoinDaily, market.NFL)
	hour := env.Analysis.Hour()
	opts := render.HourlyOptions{
		Primary:   market.BitcoinDaily,
		Secondary: market.NFL,
		XLabel:    fmt.Sprintf("Hour of Day (%s)", env.Location),
		Highlight: &hour,
	}
	title := fmt.Sprintf("When Trading Happens: Bitcoin Daily vs NFL (%d)", env.Year)
	return env.Draw.HourlyPattern(file, title, rows, opts)
}

func monthlyTrend(env *Env, file string) (string, error) {
	btc := analysis.FlaggedInMarket(env.Data.Flagged(), market.BitcoinDaily)
	rows := analysis.RepetitiveByMonth(btc, env.Location)
	title := fmt.Sprintf("Bitcoin Daily: Repetitive Rate Over Time (%d)", env.Year)
	return env.Draw.MonthlyTrend(file, title, rows)
}

func timingDistribution(env *Env, file string) (string, error) {
	sizeOne := analysis.Where(env.Data.Trades(),
		analysis.InMarket(market.BitcoinDaily),
		analysis.WithContracts(1),
	)
	rows := analysis.GapDistribution(sizeOne)
	title := fmt.Sprintf("Bitcoin Daily: Time Gaps Between Size-1 Trades (%d)", env.Year)
	return env.Draw.TimingDistribution(file, title, rows)
}

func volumeShare(env *Env, file string) (string, error) {
	rows := analysis.VolumeShare(env.Data.Trades(), env.Analysis.MinVolumeShare)
	title := fmt.Sprintf("Kalshi %d Volume by Market Type", env.Year)
	return env.Draw.VolumeShare(file, title, rows, market.BitcoinDaily)
}

func sportsVsCrypto(env *Env, file string) (string, error) {
	cmp := analysis.CompareCategories(env.Data.Flagged(), market.ComparisonMarkets)
	return env.Draw.SportsVsCrypto(file, "Sports Markets vs Bitcoin Daily: Repetitive Trading Comparison", cmp)
}
