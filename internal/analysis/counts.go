package analysis

// Counts holds the totals behind a repetitive rate.
type Counts struct {
	Total      int64 // Trades in the group
	Repetitive int64 // Trades flagged repetitive
}

// Rate returns the repetitive percentage in [0, 100].
// ok is false when the group is empty.
func (c Counts) Rate() (rate float64, ok bool) {
	if c.Total <= 0 {
		return 0, false
	}
	return float64(c.Repetitive) / float64(c.Total) * 100, true
}

// RateOrZero returns Rate, or 0 for an empty group.
func (c Counts) RateOrZero() float64 {
	r, _ := c.Rate()
	return r
}

func (c *Counts) add(f FlaggedTrade) {
	c.Total++
	if f.Repetitive {
		c.Repetitive++
	}
}

func (c *Counts) merge(o Counts) {
	c.Total += o.Total
	c.Repetitive += o.Repetitive
}

// groupCounts partitions flagged trades by key. Trades for which key
// returns false are skipped.
func groupCounts[K comparable](flagged []FlaggedTrade, key func(FlaggedTrade) (K, bool)) map[K]Counts {
	groups := make(map[K]Counts)
	for _, f := range flagged {
		k, ok := key(f)
		if !ok {
			continue
		}
		c := groups[k]
		c.add(f)
		groups[k] = c
	}
	return groups
}
