package providers

import (
	"context"
	"testing"

	"github.com/ormakov/trip-comb/app/travel"
)

type fakeRouteAdapter struct{ name string }

func (f *fakeRouteAdapter) Name() string { return f.name }
func (f *fakeRouteAdapter) FetchRoutes(context.Context, string, string, string) ([]travel.RouteOption, error) {
	return nil, nil
}

type fakeActivityAdapter struct{ name string }

func (f *fakeActivityAdapter) Name() string { return f.name }
func (f *fakeActivityAdapter) FetchActivities(context.Context, string) ([]travel.ActivityOption, error) {
	return nil, nil
}

func TestRegistry_PreservesConfiguredOrder(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterRoutes(&fakeRouteAdapter{name: "beta"})
	registry.RegisterRoutes(&fakeRouteAdapter{name: "alpha"})
	registry.RegisterRoutes(&fakeRouteAdapter{name: "gamma"})

	adapters := registry.RouteAdapters([]string{"gamma", "alpha", "beta"})

	if len(adapters) != 3 {
		t.Fatalf("Expected 3 adapters, got %d", len(adapters))
	}
	for i, expected := range []string{"gamma", "alpha", "beta"} {
		if adapters[i].Name() != expected {
			t.Errorf("Position %d: expected %s, got %s", i, expected, adapters[i].Name())
		}
	}
}

func TestRegistry_SkipsUnregisteredProvidersSilently(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterRoutes(&fakeRouteAdapter{name: "alpha"})

	adapters := registry.RouteAdapters([]string{"unknown", "alpha", "also-unknown"})

	if len(adapters) != 1 {
		t.Fatalf("Expected 1 adapter, got %d", len(adapters))
	}
	if adapters[0].Name() != "alpha" {
		t.Errorf("Expected alpha, got %s", adapters[0].Name())
	}
}

func TestRegistry_EmptySubsetIsValid(t *testing.T) {
	registry := NewRegistry()

	if adapters := registry.StayAdapters([]string{"a", "b"}); len(adapters) != 0 {
		t.Errorf("Expected no adapters, got %d", len(adapters))
	}
}

func TestRegistry_Categories(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterRoutes(&fakeRouteAdapter{name: "multi"})
	registry.RegisterActivities(&fakeActivityAdapter{name: "multi"})

	categories := registry.Categories("multi")
	if len(categories) != 2 {
		t.Fatalf("Expected 2 categories, got %v", categories)
	}
	if categories[0] != "routes" || categories[1] != "activities" {
		t.Errorf("Unexpected categories: %v", categories)
	}

	if got := registry.Categories("absent"); len(got) != 0 {
		t.Errorf("Expected no categories for unknown provider, got %v", got)
	}
}
