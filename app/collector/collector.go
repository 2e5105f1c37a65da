package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ormakov/trip-comb/app/providers"
	"github.com/ormakov/trip-comb/app/travel"
)

// Collector fans out one category's adapter calls under a concurrency
// bound and flattens the successful results. Failures (errors, timeouts,
// panics) are isolated per adapter: a failing provider contributes
// nothing and never fails the collection.
type Collector struct {
	registry *providers.Registry
	cache    *providers.ConfigCache
	limit    int
	timeout  time.Duration
}

// New validates the scheduling parameters up front; a non-positive
// concurrency limit or timeout is a configuration error, not something
// to degrade around.
func New(registry *providers.Registry, cache *providers.ConfigCache, limit int, timeout time.Duration) (*Collector, error) {
	if limit < 1 {
		return nil, fmt.Errorf("concurrency limit must be positive, got %d", limit)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("adapter timeout must be positive, got %s", timeout)
	}

	return &Collector{
		registry: registry,
		cache:    cache,
		limit:    limit,
		timeout:  timeout,
	}, nil
}

func (c *Collector) CollectRoutes(ctx context.Context, origin, destination, date string) []travel.RouteOption {
	adapters := c.registry.RouteAdapters(c.cache.EnabledNames())

	calls := make([]call[travel.RouteOption], len(adapters))
	for i, adapter := range adapters {
		adapter := adapter
		calls[i] = call[travel.RouteOption]{
			provider: adapter.Name(),
			timeout:  c.timeoutFor(adapter.Name()),
			fetch: func(ctx context.Context) ([]travel.RouteOption, error) {
				return adapter.FetchRoutes(ctx, origin, destination, date)
			},
		}
	}

	return fanOut(ctx, calls, c.limit)
}

func (c *Collector) CollectStays(ctx context.Context, destination string) []travel.StayOption {
	adapters := c.registry.StayAdapters(c.cache.EnabledNames())

	calls := make([]call[travel.StayOption], len(adapters))
	for i, adapter := range adapters {
		adapter := adapter
		calls[i] = call[travel.StayOption]{
			provider: adapter.Name(),
			timeout:  c.timeoutFor(adapter.Name()),
			fetch: func(ctx context.Context) ([]travel.StayOption, error) {
				return adapter.FetchStays(ctx, destination)
			},
		}
	}

	return fanOut(ctx, calls, c.limit)
}

func (c *Collector) CollectActivities(ctx context.Context, destination string) []travel.ActivityOption {
	adapters := c.registry.ActivityAdapters(c.cache.EnabledNames())

	calls := make([]call[travel.ActivityOption], len(adapters))
	for i, adapter := range adapters {
		adapter := adapter
		calls[i] = call[travel.ActivityOption]{
			provider: adapter.Name(),
			timeout:  c.timeoutFor(adapter.Name()),
			fetch: func(ctx context.Context) ([]travel.ActivityOption, error) {
				return adapter.FetchActivities(ctx, destination)
			},
		}
	}

	return fanOut(ctx, calls, c.limit)
}

func (c *Collector) timeoutFor(provider string) time.Duration {
	if providerConfig, err := c.cache.GetConfig(provider); err == nil && providerConfig.Timeout > 0 {
		return time.Duration(providerConfig.Timeout) * time.Second
	}
	return c.timeout
}

type call[T any] struct {
	provider string
	timeout  time.Duration
	fetch    func(ctx context.Context) ([]T, error)
}

// fanOut runs all calls with at most limit in flight and returns the
// flattened results in call order, not completion order. Keeping the
// flattening order fixed is what makes downstream first-wins
// deduplication deterministic.
func fanOut[T any](ctx context.Context, calls []call[T], limit int) []T {
	permits := make(chan struct{}, limit)
	results := make([][]T, len(calls))

	var wg sync.WaitGroup
	for i, c := range calls {
		i, c := i, c
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case permits <- struct{}{}:
				defer func() { <-permits }()
			case <-ctx.Done():
				slog.Warn("Provider fetch skipped", "provider", c.provider, "error", ctx.Err())
				return
			}

			results[i] = runIsolated(ctx, c)
		}()
	}
	wg.Wait()

	var flattened []T
	for _, records := range results {
		flattened = append(flattened, records...)
	}
	return flattened
}

// runIsolated executes one adapter call under its timeout, absorbing
// errors and panics.
func runIsolated[T any](ctx context.Context, c call[T]) (records []T) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Provider fetch panicked", "provider", c.provider, "panic", r)
			records = nil
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	fetched, err := c.fetch(callCtx)
	if err != nil {
		slog.Warn("Provider fetch failed", "provider", c.provider, "duration", time.Since(started), "error", err)
		return nil
	}

	slog.Debug("Provider fetch completed", "provider", c.provider, "duration", time.Since(started), "records", len(fetched))
	return fetched
}
