package travel

import (
	"fmt"
	"sort"
)

// Recommendation is the assembled result of one planning pass.
type Recommendation struct {
	Accommodation      string           `json:"accommodation"`
	AccommodationPrice *float64         `json:"accommodation_price,omitempty"`
	Transport          string           `json:"transport"`
	TransportPrice     *float64         `json:"transport_price,omitempty"`
	Activities         []ActivityOption `json:"activities"`
	TotalEstimate      *float64         `json:"total_estimate,omitempty"`
	SourcesUsed        []string         `json:"sources_used"`
}

// Assemble combines ranked picks into a recommendation with a derived
// total-cost estimate and the deduplicated set of contributing sources.
// Missing picks degrade to placeholder text; they never fail assembly.
func Assemble(origin, destination string, routes []RouteOption, stays []StayOption, activities []ActivityOption, topK int) (Recommendation, error) {
	topActivities, err := TopActivities(activities, topK)
	if err != nil {
		return Recommendation{}, err
	}

	rec := Recommendation{
		Accommodation: "Accommodation TBD",
		Transport:     fmt.Sprintf("transport %s -> %s", origin, destination),
		Activities:    topActivities,
		SourcesUsed:   sourcesUsed(routes, stays, activities),
	}

	total := 0.0

	if route, ok := BestRoute(routes); ok {
		rec.Transport = fmt.Sprintf("%s %s -> %s", route.Mode, origin, destination)
		rec.TransportPrice = route.Price
		total += CostPrice(route.Price)
	}

	if stay, ok := BestStay(stays); ok {
		rec.Accommodation = stay.Name
		rec.AccommodationPrice = stay.Price
		total += CostPrice(stay.Price)
	}

	for _, activity := range topActivities {
		total += CostPrice(activity.Price)
	}

	if total > 0 {
		rec.TotalEstimate = Price(total)
	}

	return rec, nil
}

// sourcesUsed collects the distinct provider names across all record
// pools, sorted for stable output.
func sourcesUsed(routes []RouteOption, stays []StayOption, activities []ActivityOption) []string {
	seen := make(map[string]bool)
	sources := make([]string, 0)

	add := func(source string) {
		if source != "" && !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}

	for _, r := range routes {
		add(r.Source)
	}
	for _, s := range stays {
		add(s.Source)
	}
	for _, a := range activities {
		add(a.Source)
	}

	sort.Strings(sources)
	return sources
}
