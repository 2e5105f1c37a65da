package cache

import (
	"context"
	"time"
)

// RecommendationCache stores serialized recommendations keyed by the
// journey they answer. A nil implementation disables caching.
type RecommendationCache interface {
	GetRecommendation(ctx context.Context, origin, destination, date string) ([]byte, bool, error)
	SetRecommendation(ctx context.Context, origin, destination, date string, data []byte, ttl time.Duration) error
	Health(ctx context.Context) map[string]interface{}
	Close() error
}
