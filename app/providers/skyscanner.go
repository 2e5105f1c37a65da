package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ormakov/trip-comb/app/travel"
)

// SkyscannerAdapter queries a Skyscanner-compatible JSON search API
// for transport itineraries. When client credentials are configured it
// authenticates with OAuth2 client-credentials and caches the access
// token until shortly before expiry; without credentials requests go
// out unauthenticated.
type SkyscannerAdapter struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	userAgent    string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewSkyscannerAdapter(baseURL, clientID, clientSecret string, httpClient *http.Client, userAgent string) *SkyscannerAdapter {
	return &SkyscannerAdapter{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		userAgent:    userAgent,
	}
}

func (a *SkyscannerAdapter) Name() string { return "skyscanner" }

type skyscannerItinerary struct {
	Mode    string  `json:"mode"`
	Summary string  `json:"summary"`
	Price   float64 `json:"price"`
	Priced  bool    `json:"priced"`
}

type skyscannerResponse struct {
	Itineraries []skyscannerItinerary `json:"itineraries"`
}

func (a *SkyscannerAdapter) FetchRoutes(ctx context.Context, origin, destination, date string) ([]travel.RouteOption, error) {
	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)
	if date != "" {
		query.Set("date", date)
	}

	searchURL := fmt.Sprintf("%s/v1/itineraries/search?%s", a.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")

	if a.clientID != "" {
		token, err := a.getToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("auth failed: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch itineraries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed skyscannerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse itineraries: %w", err)
	}

	routes := make([]travel.RouteOption, 0, len(parsed.Itineraries))
	for _, itinerary := range parsed.Itineraries {
		route := travel.RouteOption{
			Source:  a.Name(),
			Mode:    travel.ParseMode(itinerary.Mode),
			Summary: itinerary.Summary,
		}
		if itinerary.Priced {
			route.Price = travel.Price(itinerary.Price)
		}
		routes = append(routes, route)
	}

	return routes, nil
}

func (a *SkyscannerAdapter) getToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	token := a.accessToken
	expired := time.Now().After(a.tokenExpiry)
	a.mu.Unlock()

	if token != "" && !expired {
		return token, nil
	}
	return a.refreshToken(ctx)
}

func (a *SkyscannerAdapter) refreshToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.clientID)
	form.Set("client_secret", a.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	a.mu.Lock()
	a.accessToken = result.AccessToken
	// Refresh a little early so an almost-expired token is never reused
	a.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	a.mu.Unlock()

	return result.AccessToken, nil
}
