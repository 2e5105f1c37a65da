package travel

import (
	"cmp"
	"fmt"
	"slices"
)

// RatingReward is the price-equivalent reward per stay rating point:
// a stay may cost up to RatingReward units more per extra rating point
// and still win over a cheaper, lower-rated alternative.
const RatingReward = 15.0

// BestRoute picks the cheapest route, breaking price ties by transport
// mode preference. Among fully equal candidates the first one in input
// order wins. Returns false when no routes are available.
func BestRoute(routes []RouteOption) (RouteOption, bool) {
	if len(routes) == 0 {
		return RouteOption{}, false
	}

	best := routes[0]
	for _, route := range routes[1:] {
		if routeLess(route, best) {
			best = route
		}
	}
	return best, true
}

func routeLess(a, b RouteOption) bool {
	if c := cmp.Compare(RankingPrice(a.Price), RankingPrice(b.Price)); c != 0 {
		return c < 0
	}
	return a.Mode.Rank() < b.Mode.Rank()
}

// BestStay picks the accommodation minimizing price minus the rating
// reward. Unpriced stays rank last; unrated stays get no reward. Among
// equal scores the first one in input order wins. Returns false when
// no stays are available.
func BestStay(stays []StayOption) (StayOption, bool) {
	if len(stays) == 0 {
		return StayOption{}, false
	}

	best := stays[0]
	for _, stay := range stays[1:] {
		if StayScore(stay) < StayScore(best) {
			best = stay
		}
	}
	return best, true
}

// StayScore is the linear utility blend used by BestStay; lower wins.
func StayScore(stay StayOption) float64 {
	return RankingPrice(stay.Price) - stay.Rating*RatingReward
}

// TopActivities deduplicates activities by case-insensitive trimmed
// name (first occurrence wins, regardless of price), drops entries
// whose name is empty after trimming, sorts the rest by price ascending
// with unpriced entries last, and returns at most k results. A negative
// k is a programming error.
func TopActivities(activities []ActivityOption, k int) ([]ActivityOption, error) {
	if k < 0 {
		return nil, fmt.Errorf("activity limit must be non-negative, got %d", k)
	}

	seen := make(map[string]bool, len(activities))
	deduped := make([]ActivityOption, 0, len(activities))
	for _, activity := range activities {
		key := activity.DedupKey()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, activity)
	}

	slices.SortStableFunc(deduped, func(a, b ActivityOption) int {
		return cmp.Compare(RankingPrice(a.Price), RankingPrice(b.Price))
	})

	if len(deduped) > k {
		deduped = deduped[:k]
	}
	return deduped, nil
}
