package providers

import (
	"context"
	"fmt"

	"github.com/ormakov/trip-comb/app/travel"
)

// Sample adapters return structured, deterministic data so the rest of
// the service behaves as if it were aggregating from every configured
// provider while the remaining site integrations are wired up
// incrementally. Replace bodies with real fetch flows per provider.

type sampleRoutesAdapter struct {
	name  string
	build func(origin, destination, date string) []travel.RouteOption
}

func (a *sampleRoutesAdapter) Name() string { return a.name }

func (a *sampleRoutesAdapter) FetchRoutes(_ context.Context, origin, destination, date string) ([]travel.RouteOption, error) {
	return a.build(origin, destination, date), nil
}

type sampleStaysAdapter struct {
	name  string
	build func(destination string) []travel.StayOption
}

func (a *sampleStaysAdapter) Name() string { return a.name }

func (a *sampleStaysAdapter) FetchStays(_ context.Context, destination string) ([]travel.StayOption, error) {
	return a.build(destination), nil
}

type sampleActivitiesAdapter struct {
	name  string
	build func(destination string) []travel.ActivityOption
}

func (a *sampleActivitiesAdapter) Name() string { return a.name }

func (a *sampleActivitiesAdapter) FetchActivities(_ context.Context, destination string) ([]travel.ActivityOption, error) {
	return a.build(destination), nil
}

func NewMakeMyTripRoutes() RouteAdapter {
	return &sampleRoutesAdapter{
		name: "makemytrip",
		build: func(origin, destination, _ string) []travel.RouteOption {
			return []travel.RouteOption{{
				Source:  "makemytrip",
				Mode:    travel.ModeFlight,
				Summary: fmt.Sprintf("%s -> %s non-stop (MakeMyTrip)", origin, destination),
				Price:   travel.Price(220),
			}}
		},
	}
}

func NewCleartripRoutes() RouteAdapter {
	return &sampleRoutesAdapter{
		name: "cleartrip",
		build: func(origin, destination, _ string) []travel.RouteOption {
			return []travel.RouteOption{{
				Source:  "cleartrip",
				Mode:    travel.ModeTrain,
				Summary: fmt.Sprintf("%s -> %s overnight (Cleartrip)", origin, destination),
				Price:   travel.Price(80),
			}}
		},
	}
}

func NewBookingStays() StayAdapter {
	return &sampleStaysAdapter{
		name: "booking",
		build: func(_ string) []travel.StayOption {
			return []travel.StayOption{{
				Source: "booking",
				Name:   "City Loft",
				Price:  travel.Price(320),
				Rating: 4.2,
			}}
		},
	}
}

func NewViatorActivities() ActivityAdapter {
	return &sampleActivitiesAdapter{
		name: "viator",
		build: func(_ string) []travel.ActivityOption {
			return []travel.ActivityOption{{
				Source: "viator",
				Name:   "Sunset cruise",
				Price:  travel.Price(60),
			}}
		},
	}
}

func NewGetYourGuideActivities() ActivityAdapter {
	return &sampleActivitiesAdapter{
		name: "getyourguide",
		build: func(_ string) []travel.ActivityOption {
			return []travel.ActivityOption{{
				Source: "getyourguide",
				Name:   "Spice plantation tour",
				Price:  travel.Price(35),
			}}
		},
	}
}
