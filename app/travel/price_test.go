package travel

import (
	"math"
	"testing"
)

func TestParsePrice_PlainNumber(t *testing.T) {
	price := ParsePrice("120.50")
	if price == nil || *price != 120.50 {
		t.Errorf("Expected 120.50, got %v", price)
	}
}

func TestParsePrice_CurrencyNoise(t *testing.T) {
	cases := map[string]float64{
		"$220":          220,
		"€ 1,240.99":    1240.99,
		"from $45/pers": 45,
		"USD 80":        80,
	}

	for raw, expected := range cases {
		price := ParsePrice(raw)
		if price == nil {
			t.Errorf("Expected %v for %q, got nil", expected, raw)
			continue
		}
		if *price != expected {
			t.Errorf("Expected %v for %q, got %v", expected, raw, *price)
		}
	}
}

func TestParsePrice_FirstNumberWinsInListingText(t *testing.T) {
	cases := map[string]float64{
		"$120 for 2 nights":     120,
		"$93 · 4.8 (210)":       93,
		"2 adults from $45":     2,
		"€ 1,240.99 per couple": 1240.99,
	}

	for raw, expected := range cases {
		price := ParsePrice(raw)
		if price == nil {
			t.Errorf("Expected %v for %q, got nil", expected, raw)
			continue
		}
		if *price != expected {
			t.Errorf("Expected %v for %q, got %v", expected, raw, *price)
		}
	}
}

func TestParsePrice_Malformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "free", "N/A", "..", "--"} {
		if price := ParsePrice(raw); price != nil {
			t.Errorf("Expected nil for %q, got %v", raw, *price)
		}
	}
}

func TestPrice_RejectsNonFinite(t *testing.T) {
	if Price(math.NaN()) != nil {
		t.Errorf("Expected nil for NaN")
	}
	if Price(math.Inf(1)) != nil {
		t.Errorf("Expected nil for +Inf")
	}
}

func TestRankingPrice_AbsentIsWorstCase(t *testing.T) {
	if !math.IsInf(RankingPrice(nil), 1) {
		t.Errorf("Expected +Inf for absent price")
	}
	if RankingPrice(Price(42)) != 42 {
		t.Errorf("Expected 42 for present price")
	}
}

func TestCostPrice_AbsentIsFree(t *testing.T) {
	if CostPrice(nil) != 0 {
		t.Errorf("Expected 0 for absent price")
	}
	if CostPrice(Price(42)) != 42 {
		t.Errorf("Expected 42 for present price")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"flight":  ModeFlight,
		" Train ": ModeTrain,
		"BUS":     ModeBus,
		"mixed":   ModeMixed,
		"ferry":   ModeUnknown,
		"":        ModeUnknown,
	}

	for raw, expected := range cases {
		if mode := ParseMode(raw); mode != expected {
			t.Errorf("ParseMode(%q): expected %s, got %s", raw, expected, mode)
		}
	}
}

func TestModeRank_PreferenceOrder(t *testing.T) {
	order := []Mode{ModeFlight, ModeTrain, ModeBus, ModeMixed, ModeUnknown}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("Expected %s to rank before %s", order[i-1], order[i])
		}
	}
}
