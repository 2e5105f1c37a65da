package providers

import (
	"log/slog"
	"net/http"
)

// BuildRegistry registers the built-in adapter for every configured
// provider that has one. Configured providers without an implementation
// are logged and left out; the registry lookup skips them anyway.
func BuildRegistry(cache *ConfigCache, httpClient *http.Client, userAgent string) *Registry {
	registry := NewRegistry()

	for _, name := range cache.Names() {
		providerConfig, err := cache.GetConfig(name)
		if err != nil {
			continue
		}

		switch name {
		case "makemytrip":
			registry.RegisterRoutes(NewMakeMyTripRoutes())
		case "cleartrip":
			registry.RegisterRoutes(NewCleartripRoutes())
		case "skyscanner":
			registry.RegisterRoutes(NewSkyscannerAdapter(providerConfig.BaseURL,
				providerConfig.APIKey, providerConfig.APISecret, httpClient, userAgent))
		case "booking":
			registry.RegisterStays(NewBookingStays())
		case "airbnb":
			registry.RegisterStays(NewAirbnbAdapter(providerConfig.BaseURL, userAgent))
		case "tripadvisor":
			adapter := NewTripadvisorAdapter(providerConfig.BaseURL, httpClient, userAgent)
			registry.RegisterStays(adapter)
			registry.RegisterActivities(adapter)
		case "viator":
			registry.RegisterActivities(NewViatorActivities())
		case "getyourguide":
			registry.RegisterActivities(NewGetYourGuideActivities())
		case "traveldeals":
			registry.RegisterActivities(NewTravelDealsAdapter(providerConfig.FeedURL, userAgent))
		default:
			slog.Debug("No adapter implemented for provider", "provider", name)
		}
	}

	return registry
}
