package providers

import (
	"testing"

	"github.com/mmcdole/gofeed"
)

func TestDealName_StripsTrailingPrice(t *testing.T) {
	cases := map[string]string{
		"Old town food walk — $45":   "Old town food walk",
		"Sunset cruise - €60":        "Sunset cruise",
		"Spice plantation tour | $35": "Spice plantation tour",
		"Free walking tour":          "Free walking tour",
		"Rock - Roll museum":         "Rock - Roll museum",
	}

	for title, expected := range cases {
		if got := dealName(title); got != expected {
			t.Errorf("dealName(%q): expected %q, got %q", title, expected, got)
		}
	}
}

func TestExtractDealPrice(t *testing.T) {
	item := &gofeed.Item{Title: "Old town food walk — $45"}
	price := extractDealPrice(item)
	if price == nil || *price != 45 {
		t.Errorf("Expected price 45 from title, got %v", price)
	}

	item = &gofeed.Item{Title: "Sunset cruise", Description: "Now only € 1,240.99 per couple"}
	price = extractDealPrice(item)
	if price == nil || *price != 1240.99 {
		t.Errorf("Expected price 1240.99 from description, got %v", price)
	}

	item = &gofeed.Item{Title: "Free walking tour", Description: "no charge"}
	if price = extractDealPrice(item); price != nil {
		t.Errorf("Expected no price, got %v", *price)
	}
}

func TestMentionsDestination(t *testing.T) {
	item := &gofeed.Item{
		Title:       "Sunset cruise",
		Description: "Catamaran trip off the Lisbon coast",
		Categories:  []string{"Portugal"},
	}

	if !mentionsDestination(item, "lisbon") {
		t.Errorf("Expected match on description")
	}
	if !mentionsDestination(item, "Portugal") {
		t.Errorf("Expected match on category")
	}
	if mentionsDestination(item, "Oslo") {
		t.Errorf("Expected no match for unrelated destination")
	}
	if !mentionsDestination(item, "") {
		t.Errorf("Expected empty destination to match everything")
	}
}

func TestParseAirbnbRating(t *testing.T) {
	cases := map[string]float64{
		"4.8 out of 5 average rating": 4.8,
		"5 out of 5":                  5,
		"":                            0,
		"not a rating":                0,
		"9.9 out of 10":               0,
	}

	for label, expected := range cases {
		if got := parseAirbnbRating(label); got != expected {
			t.Errorf("parseAirbnbRating(%q): expected %v, got %v", label, expected, got)
		}
	}
}
