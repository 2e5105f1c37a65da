package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/ormakov/trip-comb/app/collector"
	"github.com/ormakov/trip-comb/app/database"
	"github.com/ormakov/trip-comb/app/travel"
)

// PlanTripTask produces a recommendation for a stored plan request:
// collect every category concurrently, rank, assemble, persist.
// Provider failures degrade the result; only storage errors fail the
// task.
type PlanTripTask struct {
	Task
	Origin        string
	Destination   string
	Date          string
	planCollector *collector.Collector
	planRepo      database.PlanRepository
	scheduler     TaskSchedulerInterface
	httpClient    *http.Client
	userAgent     string
	topActivities int
}

func NewPlanTripTask(planID, origin, destination, date string, planCollector *collector.Collector,
	planRepo database.PlanRepository, scheduler TaskSchedulerInterface, httpClient *http.Client,
	userAgent string, topActivities int) *PlanTripTask {
	return &PlanTripTask{
		Task:          NewTask(TaskTypePlanTrip, planID),
		Origin:        origin,
		Destination:   destination,
		Date:          date,
		planCollector: planCollector,
		planRepo:      planRepo,
		scheduler:     scheduler,
		httpClient:    httpClient,
		userAgent:     userAgent,
		topActivities: topActivities,
	}
}

func (t *PlanTripTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var routes []travel.RouteOption
	var stays []travel.StayOption
	var activities []travel.ActivityOption

	// Categories have no ordering dependency, so collect them in parallel.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		routes = t.planCollector.CollectRoutes(ctx, t.Origin, t.Destination, t.Date)
	}()
	go func() {
		defer wg.Done()
		stays = t.planCollector.CollectStays(ctx, t.Destination)
	}()
	go func() {
		defer wg.Done()
		activities = t.planCollector.CollectActivities(ctx, t.Destination)
	}()
	wg.Wait()

	recommendation, err := travel.Assemble(t.Origin, t.Destination, routes, stays, activities, t.topActivities)
	if err != nil {
		if markErr := t.planRepo.MarkPlanFailed(t.PlanID, err.Error()); markErr != nil {
			return fmt.Errorf("failed to mark plan failed: %w", markErr)
		}
		return fmt.Errorf("failed to assemble recommendation: %w", err)
	}

	serialized, err := json.Marshal(recommendation)
	if err != nil {
		return fmt.Errorf("failed to serialize recommendation: %w", err)
	}

	if err := t.planRepo.MarkPlanCompleted(t.PlanID, serialized, recommendation.SourcesUsed); err != nil {
		return fmt.Errorf("failed to store recommendation: %w", err)
	}

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"plan", t.PlanID,
		"duration", t.GetDuration(),
		"routes", len(routes),
		"stays", len(stays),
		"activities", len(activities),
		"sources", len(recommendation.SourcesUsed))

	t.enqueueEnrichment(recommendation)

	return nil
}

// enqueueEnrichment chains a description-enrichment pass when any
// picked activity carries a detail link.
func (t *PlanTripTask) enqueueEnrichment(recommendation travel.Recommendation) {
	if t.scheduler == nil {
		return
	}

	hasLinks := false
	for _, activity := range recommendation.Activities {
		if activity.Link != "" && activity.Description == "" {
			hasLinks = true
			break
		}
	}
	if !hasLinks {
		return
	}

	enrichTask := NewEnrichActivitiesTask(t.PlanID, t.httpClient, t.planRepo, t.userAgent)
	if err := t.scheduler.EnqueueTask(enrichTask); err != nil {
		slog.Warn("Failed to enqueue EnrichActivitiesTask", "plan", t.PlanID, "error", err)
	}
}
