package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ormakov/trip-comb/app/travel"
)

// TripadvisorAdapter scrapes Tripadvisor-style listing pages for both
// accommodations and activities. Selectors target the server-rendered
// listing markup; pages behind client-side rendering come back empty,
// which is treated as no results rather than a failure.
type TripadvisorAdapter struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func NewTripadvisorAdapter(baseURL string, httpClient *http.Client, userAgent string) *TripadvisorAdapter {
	return &TripadvisorAdapter{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (a *TripadvisorAdapter) Name() string { return "tripadvisor" }

func (a *TripadvisorAdapter) FetchStays(ctx context.Context, destination string) ([]travel.StayOption, error) {
	doc, err := a.fetchDocument(ctx, "/Hotels", destination)
	if err != nil {
		return nil, err
	}

	var stays []travel.StayOption
	doc.Find("div.listing").Each(func(_ int, listing *goquery.Selection) {
		name := strings.TrimSpace(listing.Find(".listing-title").Text())
		if name == "" {
			return
		}

		stay := travel.StayOption{
			Source: a.Name(),
			Name:   name,
			Price:  travel.ParsePrice(listing.Find(".price").Text()),
		}
		if ratingText, ok := listing.Find(".rating").Attr("data-rating"); ok {
			if rating, err := strconv.ParseFloat(ratingText, 64); err == nil {
				stay.Rating = rating
			}
		}
		stays = append(stays, stay)
	})

	return stays, nil
}

func (a *TripadvisorAdapter) FetchActivities(ctx context.Context, destination string) ([]travel.ActivityOption, error) {
	doc, err := a.fetchDocument(ctx, "/Attractions", destination)
	if err != nil {
		return nil, err
	}

	var activities []travel.ActivityOption
	doc.Find("div.listing").Each(func(_ int, listing *goquery.Selection) {
		name := strings.TrimSpace(listing.Find(".listing-title").Text())
		if name == "" {
			return
		}

		activity := travel.ActivityOption{
			Source: a.Name(),
			Name:   name,
			Price:  travel.ParsePrice(listing.Find(".price").Text()),
		}
		if link, ok := listing.Find("a.listing-link").Attr("href"); ok {
			activity.Link = a.absoluteURL(link)
		}
		activities = append(activities, activity)
	})

	return activities, nil
}

func (a *TripadvisorAdapter) fetchDocument(ctx context.Context, path, destination string) (*goquery.Document, error) {
	searchURL := fmt.Sprintf("%s%s?dest=%s", a.baseURL, path, url.QueryEscape(destination))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listings page: %w", err)
	}

	return doc, nil
}

func (a *TripadvisorAdapter) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return a.baseURL + href
}
