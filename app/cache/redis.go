package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client for recommendation caching.
type Cache struct {
	client *redis.Client
}

var _ RecommendationCache = (*Cache)(nil)

// NewCache connects to Redis at addr and verifies the connection.
func NewCache(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// GetRecommendation returns the cached serialized recommendation for the
// journey, with a miss indicator.
func (c *Cache) GetRecommendation(ctx context.Context, origin, destination, date string) ([]byte, bool, error) {
	key := PlanKey(origin, destination, date)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return data, true, nil
}

// SetRecommendation stores a serialized recommendation with a TTL.
func (c *Cache) SetRecommendation(ctx context.Context, origin, destination, date string, data []byte, ttl time.Duration) error {
	key := PlanKey(origin, destination, date)

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// PlanKey generates a consistent cache key for a journey. Origin and
// destination are normalized so "Goa" and " goa " hit the same entry.
func PlanKey(origin, destination, date string) string {
	normalized := fmt.Sprintf("%s|%s|%s",
		strings.ToLower(strings.TrimSpace(origin)),
		strings.ToLower(strings.TrimSpace(destination)),
		strings.TrimSpace(date))
	hash := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("plan:%x", hash[:8])
}

// Health returns cache health information.
func (c *Cache) Health(ctx context.Context) map[string]interface{} {
	health := map[string]interface{}{
		"status": "healthy",
		"type":   "redis",
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
		return health
	}

	if dbSize, err := c.client.DBSize(ctx).Result(); err == nil {
		health["key_count"] = dbSize
	}

	return health
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
