package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ormakov/trip-comb/app/cache"
	"github.com/ormakov/trip-comb/app/collector"
	"github.com/ormakov/trip-comb/app/database"
	"github.com/ormakov/trip-comb/app/providers"
	"github.com/ormakov/trip-comb/app/tasks"
)

type Handler struct {
	configCache   *providers.ConfigCache
	registry      *providers.Registry
	planCollector *collector.Collector
	planRepo      database.PlanRepository
	planCache     cache.RecommendationCache // nil when caching is disabled
	cacheTTL      time.Duration
	scheduler     tasks.TaskSchedulerInterface
	httpClient    *http.Client
	userAgent     string
	topActivities int
}

// PlanRequest is the journey description accepted by the plan endpoints.
type PlanRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Date        string `json:"date"`
	Notes       string `json:"notes"`
}

// PlanStatusResponse describes a stored asynchronous plan.
type PlanStatusResponse struct {
	ID             string          `json:"id"`
	Origin         string          `json:"origin"`
	Destination    string          `json:"destination"`
	Date           string          `json:"date,omitempty"`
	Status         string          `json:"status"`
	Recommendation json.RawMessage `json:"recommendation,omitempty"`
	Error          string          `json:"error,omitempty"`
	CreatedAt      string          `json:"created_at"`
	CompletedAt    string          `json:"completed_at,omitempty"`
}
