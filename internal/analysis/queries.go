package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/rickgao/kalshi-washcharts/internal/market"
	"github.com/rickgao/kalshi-washcharts/internal/model"
)

// -----------------------------------------------------------------------------
// Repetitive rate by market
// -----------------------------------------------------------------------------

// MarketRate is one row of the by-market query.
type MarketRate struct {
	Market string
	Counts
}

// RepetitiveByMarket returns the repetitive rate of every classified market
// with at least minTotal trades, highest rate first. Other is excluded.
func RepetitiveByMarket(flagged []FlaggedTrade, minTotal int64) []MarketRate {
	groups := groupCounts(flagged, func(f FlaggedTrade) (string, bool) {
		return f.Market, f.Market != market.Other
	})

	rows := make([]MarketRate, 0, len(groups))
	for label, c := range groups {
		if c.Total < minTotal {
			continue
		}
		rows = append(rows, MarketRate{Market: label, Counts: c})
	}

	slices.SortFunc(rows, func(a, b MarketRate) int {
		if c := cmp.Compare(b.RateOrZero(), a.RateOrZero()); c != 0 {
			return c
		}
		return cmp.Compare(a.Market, b.Market)
	})
	return rows
}

// -----------------------------------------------------------------------------
// Repetitive rate by trade size
// -----------------------------------------------------------------------------

// SizeRate is one row of the by-size query.
type SizeRate struct {
	Size int
	Counts
}

// RepetitiveBySize returns one row per requested size, ascending. Sizes
// without trades are kept with zero counts.
func RepetitiveBySize(flagged []FlaggedTrade, sizes []int) []SizeRate {
	wanted := make(map[int]bool, len(sizes))
	for _, s := range sizes {
		wanted[s] = true
	}

	groups := groupCounts(flagged, func(f FlaggedTrade) (int, bool) {
		return f.Contracts, wanted[f.Contracts]
	})

	ordered := slices.Clone(sizes)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	rows := make([]SizeRate, 0, len(ordered))
	for _, s := range ordered {
		rows = append(rows, SizeRate{Size: s, Counts: groups[s]})
	}
	return rows
}

// -----------------------------------------------------------------------------
// Repetitive rate by month
// -----------------------------------------------------------------------------

// MonthlyRate is one row of the by-month query.
type MonthlyRate struct {
	Month time.Time // First instant of the month in the reference zone
	Counts
}

// Key returns the month as "YYYY-MM".
func (m MonthlyRate) Key() string {
	return m.Month.Format("2006-01")
}

// Label returns the month as "MM/YY".
func (m MonthlyRate) Label() string {
	return m.Month.Format("01/06")
}

// RepetitiveByMonth groups flagged trades by calendar month in loc,
// oldest first.
func RepetitiveByMonth(flagged []FlaggedTrade, loc *time.Location) []MonthlyRate {
	if loc == nil {
		loc = time.UTC
	}
	groups := groupCounts(flagged, func(f FlaggedTrade) (time.Time, bool) {
		t := f.CreatedAt.In(loc)
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc), true
	})

	rows := make([]MonthlyRate, 0, len(groups))
	for month, c := range groups {
		rows = append(rows, MonthlyRate{Month: month, Counts: c})
	}
	slices.SortFunc(rows, func(a, b MonthlyRate) int {
		return a.Month.Compare(b.Month)
	})
	return rows
}

// -----------------------------------------------------------------------------
// Hourly pattern
// -----------------------------------------------------------------------------

// HourlyShare is one hour of the two-market hourly overlay.
type HourlyShare struct {
	Hour         int
	Primary      int64   // Trades in the primary market during the hour
	Secondary    int64   // Trades in the secondary market during the hour
	PrimaryPct   float64 // Primary as a percent of the primary market total
	SecondaryPct float64 // Secondary as a percent of the secondary market total
}

// HourlyPattern counts trades per hour of day (in loc) for two markets and
// normalizes each to its own total. It always returns 24 rows.
func HourlyPattern(trades []model.Trade, loc *time.Location, primary, secondary string) []HourlyShare {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]HourlyShare, 24)
	for h := range rows {
		rows[h].Hour = h
	}

	labels := make(map[string]string)
	var primaryTotal, secondaryTotal int64
	for _, tr := range trades {
		label := classifyCached(labels, tr.ReportTicker)
		h := tr.CreatedAt.In(loc).Hour()
		switch label {
		case primary:
			rows[h].Primary++
			primaryTotal++
		case secondary:
			rows[h].Secondary++
			secondaryTotal++
		}
	}

	for h := range rows {
		rows[h].PrimaryPct = percent(rows[h].Primary, primaryTotal)
		rows[h].SecondaryPct = percent(rows[h].Secondary, secondaryTotal)
	}
	return rows
}

// -----------------------------------------------------------------------------
// Gap distribution
// -----------------------------------------------------------------------------

// GapCount is one bucket of the gap histogram.
type GapCount struct {
	Bucket GapBucket
	Count  int64
}

// GapDistribution histograms the time between consecutive trades of the
// same ticker. The first trade of every ticker has no gap and is not
// counted. Every bucket is returned, in order, including empty ones.
func GapDistribution(trades []model.Trade) []GapCount {
	rows := make([]GapCount, len(gapBuckets))
	for i, b := range gapBuckets {
		rows[i].Bucket = b
	}

	for _, seq := range sequences(trades) {
		for i := 1; i < len(seq); i++ {
			idx := bucketIndex(seq[i].CreatedAt.Sub(seq[i-1].CreatedAt))
			if idx < 0 {
				continue
			}
			rows[idx].Count++
		}
	}
	return rows
}

// -----------------------------------------------------------------------------
// Volume share
// -----------------------------------------------------------------------------

// VolumeSlice is one slice of the volume share chart.
type VolumeSlice struct {
	Market    string
	Volume    int64   // Contracts traded
	Share     float64 // Percent of total volume
	Synthetic bool    // Merged slice of small markets
}

// VolumeShare sums contracts per market. Markets below minShare (a
// fraction, e.g. 0.02) of the total, and unclassified trades, are merged
// into one trailing Other slice. Slices are ordered by volume descending.
func VolumeShare(trades []model.Trade, minShare float64) []VolumeSlice {
	labels := make(map[string]string)
	volumes := make(map[string]int64)
	var total int64
	for _, tr := range trades {
		v := int64(tr.Contracts)
		volumes[classifyCached(labels, tr.ReportTicker)] += v
		total += v
	}
	if total == 0 {
		return nil
	}

	threshold := float64(total) * minShare
	var rows []VolumeSlice
	var otherVol int64
	for label, v := range volumes {
		if label == market.Other || float64(v) < threshold {
			otherVol += v
			continue
		}
		rows = append(rows, VolumeSlice{Market: label, Volume: v})
	}

	slices.SortFunc(rows, func(a, b VolumeSlice) int {
		if c := cmp.Compare(b.Volume, a.Volume); c != 0 {
			return c
		}
		return cmp.Compare(a.Market, b.Market)
	})
	if otherVol > 0 {
		rows = append(rows, VolumeSlice{Market: market.Other, Volume: otherVol, Synthetic: true})
	}

	for i := range rows {
		rows[i].Share = percent(rows[i].Volume, total)
	}
	return rows
}

// -----------------------------------------------------------------------------
// Sports vs crypto comparison
// -----------------------------------------------------------------------------

// ComparisonRow is one market of the category comparison.
type ComparisonRow struct {
	Market   string // Short label
	Category market.Category
	Counts
}

// Comparison holds the per-market rows plus pooled totals per category.
type Comparison struct {
	Rows   []ComparisonRow // Sports (rate ascending) then crypto
	Sports Counts
	Crypto Counts
}

// Ratio returns the crypto pooled rate divided by the sports pooled rate.
// ok is false when either rate is undefined or the sports rate is zero.
func (c Comparison) Ratio() (ratio float64, ok bool) {
	cr, ok1 := c.Crypto.Rate()
	sr, ok2 := c.Sports.Rate()
	if !ok1 || !ok2 || sr == 0 {
		return 0, false
	}
	return cr / sr, true
}

// SportsCount returns how many leading rows are sports markets.
func (c Comparison) SportsCount() int {
	n := 0
	for _, r := range c.Rows {
		if r.Category == market.CategorySports {
			n++
		}
	}
	return n
}

// CompareCategories computes repetitive rates for the given markets and
// pools them by category. Markets outside the sports and crypto
// categories, and markets without trades, are left out.
func CompareCategories(flagged []FlaggedTrade, markets []string) Comparison {
	wanted := make(map[string]bool, len(markets))
	for _, m := range markets {
		wanted[m] = true
	}
	groups := groupCounts(flagged, func(f FlaggedTrade) (string, bool) {
		return f.Market, wanted[f.Market]
	})

	var cmpRes Comparison
	var sports, crypto []ComparisonRow
	for label, c := range groups {
		row := ComparisonRow{Market: market.ShortLabel(label), Category: market.CategoryOf(label), Counts: c}
		switch row.Category {
		case market.CategorySports:
			sports = append(sports, row)
			cmpRes.Sports.merge(c)
		case market.CategoryCrypto:
			crypto = append(crypto, row)
			cmpRes.Crypto.merge(c)
		}
	}

	byRate := func(a, b ComparisonRow) int {
		if c := cmp.Compare(a.RateOrZero(), b.RateOrZero()); c != 0 {
			return c
		}
		return cmp.Compare(a.Market, b.Market)
	}
	slices.SortFunc(sports, byRate)
	slices.SortFunc(crypto, byRate)

	cmpRes.Rows = append(sports, crypto...)
	return cmpRes
}

func percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
