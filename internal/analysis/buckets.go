package analysis

import "time"

// GapBucket is a half-open interval [Min, Max) of inter-trade gaps.
// A zero Max means unbounded.
type GapBucket struct {
	Label string
	Min   time.Duration
	Max   time.Duration
}

// Contains reports whether gap falls inside the bucket.
func (b GapBucket) Contains(gap time.Duration) bool {
	if gap < b.Min {
		return false
	}
	return b.Max == 0 || gap < b.Max
}

var gapBuckets = []GapBucket{
	{Label: "0 (same second)", Min: 0, Max: time.Second},
	{Label: "1 second", Min: time.Second, Max: 2 * time.Second},
	{Label: "2 seconds", Min: 2 * time.Second, Max: 3 * time.Second},
	{Label: "3-4 seconds", Min: 3 * time.Second, Max: 5 * time.Second},
	{Label: "5-9 seconds", Min: 5 * time.Second, Max: 10 * time.Second},
	{Label: "10-29 seconds", Min: 10 * time.Second, Max: 30 * time.Second},
	{Label: "30-59 seconds", Min: 30 * time.Second, Max: 60 * time.Second},
	{Label: "60+ seconds", Min: 60 * time.Second},
}

// GapBuckets returns the ordered gap histogram buckets.
func GapBuckets() []GapBucket {
	out := make([]GapBucket, len(gapBuckets))
	copy(out, gapBuckets)
	return out
}

// bucketIndex returns the index of the bucket holding gap, or -1 for
// negative gaps.
func bucketIndex(gap time.Duration) int {
	for i, b := range gapBuckets {
		if b.Contains(gap) {
			return i
		}
	}
	return -1
}

// DefaultTradeSizes are the contract sizes shown on the size chart.
var DefaultTradeSizes = []int{1, 2, 3, 5, 10, 25, 50, 100}
