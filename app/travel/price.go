package travel

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var priceTokenPattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts a numeric price from provider-supplied text.
// Listing text routinely carries more than one number ("$120 for 2
// nights", "$93 · 4.8 (210)"), so only the first numeric token counts;
// currency symbols and thousands separators are stripped. Returns nil
// for missing, malformed or non-finite values; the caller decides how
// absence ranks via RankingPrice / CostPrice.
func ParsePrice(raw string) *float64 {
	token := priceTokenPattern.FindString(raw)
	if token == "" {
		return nil
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", ""), 64)
	if err != nil {
		return nil
	}
	return Price(value)
}

// Price wraps a known numeric price. Non-finite values are treated as
// absent so they can never leak into totals.
func Price(value float64) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// RankingPrice is the comparison value used by the ranking functions:
// an absent price ranks worst.
func RankingPrice(price *float64) float64 {
	if price == nil {
		return math.Inf(1)
	}
	return *price
}

// CostPrice is the value used for total-cost arithmetic: an absent
// price contributes nothing instead of inflating the estimate.
func CostPrice(price *float64) float64 {
	if price == nil {
		return 0
	}
	return *price
}
