package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/ormakov/trip-comb/app/travel"
)

// AirbnbAdapter renders Airbnb search results in a headless browser
// before extracting listings; the listing grid is client-side rendered
// and invisible to a plain HTTP fetch. One browser per call, closed on
// return, so no browser state is shared between concurrent fetches.
type AirbnbAdapter struct {
	baseURL   string
	userAgent string
}

func NewAirbnbAdapter(baseURL, userAgent string) *AirbnbAdapter {
	return &AirbnbAdapter{
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

func (a *AirbnbAdapter) Name() string { return "airbnb" }

type airbnbCard struct {
	Title  string `json:"title"`
	Price  string `json:"price"`
	Rating string `json:"rating"`
}

const airbnbExtractJS = `Array.from(document.querySelectorAll('[data-testid="card-container"]')).map(card => ({
	title: (card.querySelector('[data-testid="listing-card-title"]') || {}).textContent || '',
	price: (card.querySelector('[data-testid="price-availability-row"]') || {}).textContent || '',
	rating: (card.querySelector('[aria-label*="rating"]') || {getAttribute: () => ''}).getAttribute('aria-label') || ''
}))`

func (a *AirbnbAdapter) FetchStays(ctx context.Context, destination string) ([]travel.StayOption, error) {
	browserCtx, cancel := a.newBrowserContext(ctx)
	defer cancel()

	searchURL := fmt.Sprintf("%s/s/%s/homes", a.baseURL, url.PathEscape(destination))

	var cards []airbnbCard
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitVisible(`[data-testid="card-container"]`, chromedp.ByQuery),
		chromedp.Evaluate(airbnbExtractJS, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render search results: %w", err)
	}

	stays := make([]travel.StayOption, 0, len(cards))
	for _, card := range cards {
		title := strings.TrimSpace(card.Title)
		if title == "" {
			continue
		}
		stays = append(stays, travel.StayOption{
			Source: a.Name(),
			Name:   title,
			Price:  travel.ParsePrice(card.Price),
			Rating: parseAirbnbRating(card.Rating),
		})
	}

	return stays, nil
}

func (a *AirbnbAdapter) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(a.userAgent),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return browserCtx, cancel
}

// parseAirbnbRating reads the leading number out of labels like
// "4.8 out of 5 average rating".
func parseAirbnbRating(label string) float64 {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) == 0 {
		return 0
	}
	rating, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || rating < 0 || rating > 5 {
		return 0
	}
	return rating
}
