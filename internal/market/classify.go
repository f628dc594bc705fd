package market

import "strings"

// Other is the label for report tickers that match no rule.
const Other = "Other"

// Category groups markets for cross-market comparison.
type Category string

// Market categories.
const (
	CategorySports    Category = "Sports"
	CategoryCrypto    Category = "Crypto"
	CategoryEconomics Category = "Economics"
	CategoryOther     Category = "Other"
)

// Well-known labels referenced by queries and renderers.
const (
	NFL          = "NFL"
	NCAAFootball = "NCAA Football"
	NBA          = "NBA"
	MLB          = "MLB"
	MarchMadness = "March Madness"
	BitcoinDaily = "Bitcoin Daily"
	Tennis       = "Tennis"
	FedDecisions = "Fed Decisions"
	Golf         = "Golf"
)

// Rule maps a report ticker pattern to a market label.
type Rule struct {
	Pattern  string   // Report ticker prefix (or full ticker when Exact)
	Exact    bool     // Match the whole report ticker instead of a prefix
	Label    string   // Display label
	Short    string   // Compact label for crowded axes
	Category Category // Comparison group
}

// Matches reports whether the rule applies to reportTicker. Case-sensitive.
func (r Rule) Matches(reportTicker string) bool {
	if r.Exact {
		return reportTicker == r.Pattern
	}
	return strings.HasPrefix(reportTicker, r.Pattern)
}

// rules is evaluated in order; patterns are disjoint so order only matters
// for readability.
var rules = []Rule{
	{Pattern: "KXNFL", Label: NFL, Short: "NFL", Category: CategorySports},
	{Pattern: "KXNCAAF", Label: NCAAFootball, Short: "NCAA FB", Category: CategorySports},
	{Pattern: "KXNBA", Label: NBA, Short: "NBA", Category: CategorySports},
	{Pattern: "KXMLB", Label: MLB, Short: "MLB", Category: CategorySports},
	{Pattern: "KXMARMAD", Label: MarchMadness, Short: "March Madness", Category: CategorySports},
	{Pattern: "KXBTCD", Label: BitcoinDaily, Short: "Bitcoin Daily", Category: CategoryCrypto},
	{Pattern: "KXATP", Label: Tennis, Short: "Tennis", Category: CategorySports},
	{Pattern: "KXFEDDECISION", Exact: true, Label: FedDecisions, Short: "Fed Decisions", Category: CategoryEconomics},
	{Pattern: "KXPGA", Label: Golf, Short: "Golf", Category: CategorySports},
}

// Rules returns a copy of the classification table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Lookup returns the first rule matching reportTicker.
func Lookup(reportTicker string) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(reportTicker) {
			return r, true
		}
	}
	return Rule{}, false
}

// Classify maps a report ticker to its market label, or Other.
func Classify(reportTicker string) string {
	if r, ok := Lookup(reportTicker); ok {
		return r.Label
	}
	return Other
}

// ShortLabel returns the compact label for a market label.
// Unknown labels are returned unchanged.
func ShortLabel(label string) string {
	for _, r := range rules {
		if r.Label == label {
			return r.Short
		}
	}
	return label
}

// CategoryOf returns the category of a market label.
func CategoryOf(label string) Category {
	for _, r := range rules {
		if r.Label == label {
			return r.Category
		}
	}
	return CategoryOther
}

// ComparisonMarkets lists the markets shown on the sports-vs-crypto chart.
var ComparisonMarkets = []string{NFL, NCAAFootball, NBA, MLB, BitcoinDaily}
