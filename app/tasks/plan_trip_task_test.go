package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ormakov/trip-comb/app/collector"
	"github.com/ormakov/trip-comb/app/database"
	"github.com/ormakov/trip-comb/app/providers"
	"github.com/ormakov/trip-comb/app/travel"
)

type fakePlanRepo struct {
	completed      map[string][]byte
	failed         map[string]string
	deletedBefore  *time.Time
	deletedReturns int64
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		completed: make(map[string][]byte),
		failed:    make(map[string]string),
	}
}

func (f *fakePlanRepo) CreatePlan(database.Plan) error { return nil }
func (f *fakePlanRepo) GetPlan(string) (*database.Plan, error) {
	return nil, nil
}
func (f *fakePlanRepo) MarkPlanCompleted(id string, recommendation []byte, _ []string) error {
	f.completed[id] = recommendation
	return nil
}
func (f *fakePlanRepo) MarkPlanFailed(id string, reason string) error {
	f.failed[id] = reason
	return nil
}
func (f *fakePlanRepo) UpdateRecommendation(string, []byte) error { return nil }
func (f *fakePlanRepo) GetPlanCount() (int, error)                { return len(f.completed), nil }
func (f *fakePlanRepo) GetPlanStats() (int, int, int, error)      { return 0, len(f.completed), len(f.failed), nil }
func (f *fakePlanRepo) DeletePlansBefore(cutoff time.Time) (int64, error) {
	f.deletedBefore = &cutoff
	return f.deletedReturns, nil
}

type scriptedRoutes struct {
	name   string
	routes []travel.RouteOption
	err    error
}

func (s *scriptedRoutes) Name() string { return s.name }
func (s *scriptedRoutes) FetchRoutes(context.Context, string, string, string) ([]travel.RouteOption, error) {
	return s.routes, s.err
}

type scriptedStays struct {
	name  string
	stays []travel.StayOption
}

func (s *scriptedStays) Name() string { return s.name }
func (s *scriptedStays) FetchStays(context.Context, string) ([]travel.StayOption, error) {
	return s.stays, nil
}

func newTestCollector(t *testing.T, registry *providers.Registry, names ...string) *collector.Collector {
	t.Helper()

	content := "providers:\n"
	for _, name := range names {
		content += fmt.Sprintf("  - name: %s\n    enabled: true\n", name)
	}
	path := filepath.Join(t.TempDir(), "providers.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write providers file: %v", err)
	}

	cache := providers.NewConfigCache(path)
	if err := cache.Run(); err != nil {
		t.Fatalf("Failed to load providers file: %v", err)
	}

	c, err := collector.New(registry, cache, 5, time.Second)
	if err != nil {
		t.Fatalf("Failed to build collector: %v", err)
	}
	return c
}

func TestPlanTripTask_StoresRecommendation(t *testing.T) {
	registry := providers.NewRegistry()
	registry.RegisterRoutes(&scriptedRoutes{name: "rail", routes: []travel.RouteOption{
		{Source: "rail", Mode: travel.ModeTrain, Price: travel.Price(80)},
	}})
	registry.RegisterRoutes(&scriptedRoutes{name: "air", err: fmt.Errorf("rate limited")})
	registry.RegisterStays(&scriptedStays{name: "rooms", stays: []travel.StayOption{
		{Source: "rooms", Name: "City Loft", Price: travel.Price(320), Rating: 4.2},
	}})

	repo := newFakePlanRepo()
	task := NewPlanTripTask("plan-1", "Goa", "Lisbon", "",
		newTestCollector(t, registry, "rail", "air", "rooms"), repo, nil, nil, "test-agent", 3)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stored, ok := repo.completed["plan-1"]
	if !ok {
		t.Fatal("Expected plan to be marked completed")
	}

	var recommendation travel.Recommendation
	if err := json.Unmarshal(stored, &recommendation); err != nil {
		t.Fatalf("Stored recommendation is not valid JSON: %v", err)
	}

	if recommendation.Transport != "train Goa -> Lisbon" {
		t.Errorf("Unexpected transport: %s", recommendation.Transport)
	}
	if recommendation.Accommodation != "City Loft" {
		t.Errorf("Unexpected accommodation: %s", recommendation.Accommodation)
	}
	// Failing provider degrades the result, it never fails the plan
	if len(repo.failed) != 0 {
		t.Errorf("Expected no failed plans, got %v", repo.failed)
	}
}

func TestPlanTripTask_AllProvidersFailingStillCompletes(t *testing.T) {
	registry := providers.NewRegistry()
	registry.RegisterRoutes(&scriptedRoutes{name: "air", err: fmt.Errorf("boom")})

	repo := newFakePlanRepo()
	task := NewPlanTripTask("plan-2", "A", "B", "",
		newTestCollector(t, registry, "air"), repo, nil, nil, "test-agent", 3)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, ok := repo.completed["plan-2"]; !ok {
		t.Errorf("Expected degraded plan to still complete")
	}
}

func TestCleanupPlansTask_UsesRetentionCutoff(t *testing.T) {
	repo := newFakePlanRepo()
	repo.deletedReturns = 4

	task := NewCleanupPlansTask(repo, 24*time.Hour)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if repo.deletedBefore == nil {
		t.Fatal("Expected a delete cutoff to be used")
	}
	expected := time.Now().UTC().Add(-24 * time.Hour)
	if diff := expected.Sub(*repo.deletedBefore); diff < -time.Minute || diff > time.Minute {
		t.Errorf("Cutoff %v too far from expected %v", repo.deletedBefore, expected)
	}
}
