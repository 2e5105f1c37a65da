package providers

import (
	"context"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/ormakov/trip-comb/app/travel"
)

// TravelDealsAdapter reads an RSS/Atom feed of activity deals for a
// destination. Entry titles carry the activity name and usually a
// price ("Old town food walk — $45"); entries that don't mention the
// destination are skipped.
type TravelDealsAdapter struct {
	feedURL string
	parser  *gofeed.Parser
}

func NewTravelDealsAdapter(feedURL, userAgent string) *TravelDealsAdapter {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &TravelDealsAdapter{
		feedURL: feedURL,
		parser:  parser,
	}
}

func (a *TravelDealsAdapter) Name() string { return "traveldeals" }

var dealPricePattern = regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d+)?`)

func (a *TravelDealsAdapter) FetchActivities(ctx context.Context, destination string) ([]travel.ActivityOption, error) {
	parsed, err := a.parser.ParseURLWithContext(a.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	activities := make([]travel.ActivityOption, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if !mentionsDestination(item, destination) {
			continue
		}

		activities = append(activities, travel.ActivityOption{
			Source:      a.Name(),
			Name:        dealName(item.Title),
			Price:       extractDealPrice(item),
			Link:        item.Link,
			Description: item.Description,
		})
	}

	return activities, nil
}

func mentionsDestination(item *gofeed.Item, destination string) bool {
	needle := strings.ToLower(strings.TrimSpace(destination))
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, category := range item.Categories {
		haystack += " " + strings.ToLower(category)
	}
	return strings.Contains(haystack, needle)
}

// dealName strips a trailing price segment from the entry title.
func dealName(title string) string {
	for _, separator := range []string{" — ", " - ", " | "} {
		if idx := strings.LastIndex(title, separator); idx > 0 {
			tail := title[idx+len(separator):]
			if dealPricePattern.MatchString(tail) {
				return strings.TrimSpace(title[:idx])
			}
		}
	}
	return strings.TrimSpace(title)
}

func extractDealPrice(item *gofeed.Item) *float64 {
	if match := dealPricePattern.FindString(item.Title); match != "" {
		return travel.ParsePrice(match)
	}
	if match := dealPricePattern.FindString(item.Description); match != "" {
		return travel.ParsePrice(match)
	}
	return nil
}
