package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ormakov/trip-comb/app/cache"
	"github.com/ormakov/trip-comb/app/collector"
	"github.com/ormakov/trip-comb/app/database"
	"github.com/ormakov/trip-comb/app/providers"
	"github.com/ormakov/trip-comb/app/tasks"
	"github.com/ormakov/trip-comb/app/travel"
)

func NewHandler(configCache *providers.ConfigCache, registry *providers.Registry,
	planCollector *collector.Collector, planRepo database.PlanRepository,
	planCache cache.RecommendationCache, cacheTTL time.Duration,
	scheduler tasks.TaskSchedulerInterface, httpClient *http.Client,
	userAgent string, topActivities int) *Handler {
	return &Handler{
		configCache:   configCache,
		registry:      registry,
		planCollector: planCollector,
		planRepo:      planRepo,
		planCache:     planCache,
		cacheTTL:      cacheTTL,
		scheduler:     scheduler,
		httpClient:    httpClient,
		userAgent:     userAgent,
		topActivities: topActivities,
	}
}

// PlanTrip aggregates all three categories and responds with the
// assembled recommendation. Provider failures only thin out the
// result; the request succeeds as long as the input is well-formed.
func (h *Handler) PlanTrip(c *gin.Context) {
	var request PlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	ctx := c.Request.Context()

	if h.planCache != nil {
		if cached, hit, err := h.planCache.GetRecommendation(ctx, request.Origin, request.Destination, request.Date); err != nil {
			slog.Warn("Cache lookup failed", "error", err)
		} else if hit {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	var routes []travel.RouteOption
	var stays []travel.StayOption
	var activities []travel.ActivityOption

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		routes = h.planCollector.CollectRoutes(ctx, request.Origin, request.Destination, request.Date)
	}()
	go func() {
		defer wg.Done()
		stays = h.planCollector.CollectStays(ctx, request.Destination)
	}()
	go func() {
		defer wg.Done()
		activities = h.planCollector.CollectActivities(ctx, request.Destination)
	}()
	wg.Wait()

	recommendation, err := travel.Assemble(request.Origin, request.Destination, routes, stays, activities, h.topActivities)
	if err != nil {
		slog.Error("Recommendation assembly failed", "origin", request.Origin, "destination", request.Destination, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assemble recommendation"})
		return
	}

	if h.planCache != nil {
		if data, marshalErr := json.Marshal(recommendation); marshalErr == nil {
			if cacheErr := h.planCache.SetRecommendation(ctx, request.Origin, request.Destination, request.Date, data, h.cacheTTL); cacheErr != nil {
				slog.Warn("Cache store failed", "error", cacheErr)
			}
		}
	}

	c.JSON(http.StatusOK, recommendation)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"providers": h.configCache.GetConfigCount(),
	}

	if h.planRepo != nil {
		if planCount, err := h.planRepo.GetPlanCount(); err == nil {
			health["plans"] = planCount
		}
	}

	if h.planCache != nil {
		health["cache"] = h.planCache.Health(c.Request.Context())
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	enabled := h.configCache.EnabledNames()

	stats := map[string]interface{}{
		"providers_configured": h.configCache.GetConfigCount(),
		"providers_enabled":    len(enabled),
	}

	if h.planRepo != nil {
		if planning, completed, failed, err := h.planRepo.GetPlanStats(); err == nil {
			stats["plans"] = map[string]int{
				"planning":  planning,
				"completed": completed,
				"failed":    failed,
			}
		}
	}

	c.JSON(http.StatusOK, stats)
}

// APICreatePlan stores a plan request and hands it to the background
// workers.
func (h *Handler) APICreatePlan(c *gin.Context) {
	var request PlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	plan := database.Plan{
		ID:          uuid.NewString(),
		Origin:      request.Origin,
		Destination: request.Destination,
		Date:        request.Date,
		Notes:       request.Notes,
	}

	if err := h.planRepo.CreatePlan(plan); err != nil {
		slog.Error("Database error", "operation", "create_plan", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store plan"})
		return
	}

	task := tasks.NewPlanTripTask(plan.ID, plan.Origin, plan.Destination, plan.Date,
		h.planCollector, h.planRepo, h.scheduler, h.httpClient, h.userAgent, h.topActivities)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue PlanTripTask", "plan", plan.ID, "error", err)
		if markErr := h.planRepo.MarkPlanFailed(plan.ID, "task queue unavailable"); markErr != nil {
			slog.Error("Failed to mark plan failed", "plan", plan.ID, "error", markErr)
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Planner is busy, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":     plan.ID,
		"status": database.PlanStatusPlanning,
	})
}

func (h *Handler) APIGetPlan(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan id"})
		return
	}

	plan, err := h.planRepo.GetPlan(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_plan", "plan", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	response := PlanStatusResponse{
		ID:          plan.ID,
		Origin:      plan.Origin,
		Destination: plan.Destination,
		Date:        plan.Date,
		Status:      plan.Status,
		Error:       plan.Error,
		CreatedAt:   plan.CreatedAt.Format(time.RFC3339),
	}
	if len(plan.Recommendation) > 0 {
		response.Recommendation = json.RawMessage(plan.Recommendation)
	}
	if plan.CompletedAt != nil {
		response.CompletedAt = plan.CompletedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) APIListProviders(c *gin.Context) {
	names := h.configCache.Names()

	providerInfos := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		providerConfig, err := h.configCache.GetConfig(name)
		if err != nil {
			continue
		}

		providerInfos = append(providerInfos, map[string]interface{}{
			"name":       name,
			"enabled":    providerConfig.Enabled,
			"timeout":    providerConfig.Timeout,
			"categories": h.registry.Categories(name),
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"providers": providerInfos,
		"total":     len(providerInfos),
	})
}
