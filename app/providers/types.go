package providers

import (
	"context"

	"github.com/ormakov/trip-comb/app/travel"
)

// Adapters are the leaf collaborators querying one external provider
// for one category. An adapter either returns normalized records or
// fails; partial category coverage per provider is expected.

type RouteAdapter interface {
	Name() string
	FetchRoutes(ctx context.Context, origin, destination, date string) ([]travel.RouteOption, error)
}

type StayAdapter interface {
	Name() string
	FetchStays(ctx context.Context, destination string) ([]travel.StayOption, error)
}

type ActivityAdapter interface {
	Name() string
	FetchActivities(ctx context.Context, destination string) ([]travel.ActivityOption, error)
}

// Config describes one configured provider. Order in the providers
// file defines fan-out order.
type Config struct {
	Name      string `yaml:"name"`
	Enabled   bool   `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	FeedURL   string `yaml:"feed_url"`
	APIKey    string `yaml:"api_key"`    // OAuth2 client id for token-authed APIs
	APISecret string `yaml:"api_secret"` // OAuth2 client secret
	Timeout   int    `yaml:"timeout"`    // seconds, overrides the global adapter timeout
}

type configFile struct {
	Providers []*Config `yaml:"providers"`
}
