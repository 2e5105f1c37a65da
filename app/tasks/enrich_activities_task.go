package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"

	"github.com/ormakov/trip-comb/app/database"
	"github.com/ormakov/trip-comb/app/travel"
)

const maxDescriptionLength = 500

// EnrichActivitiesTask backfills readable descriptions for a completed
// plan's picked activities by fetching their detail pages. Enrichment
// is best effort: a page that cannot be fetched or distilled leaves
// the activity as is.
type EnrichActivitiesTask struct {
	Task
	httpClient *http.Client
	planRepo   database.PlanRepository
	userAgent  string
}

func NewEnrichActivitiesTask(planID string, httpClient *http.Client, planRepo database.PlanRepository, userAgent string) *EnrichActivitiesTask {
	return &EnrichActivitiesTask{
		Task:       NewTask(TaskTypeEnrichActivities, planID),
		httpClient: httpClient,
		planRepo:   planRepo,
		userAgent:  userAgent,
	}
}

func (t *EnrichActivitiesTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	plan, err := t.planRepo.GetPlan(t.PlanID)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("plan not found: %s", t.PlanID)
	}
	if plan.Status != database.PlanStatusCompleted || len(plan.Recommendation) == 0 {
		slog.Debug("Plan has no recommendation to enrich", "plan", t.PlanID, "status", plan.Status)
		return nil
	}

	var recommendation travel.Recommendation
	if err := json.Unmarshal(plan.Recommendation, &recommendation); err != nil {
		return fmt.Errorf("failed to parse stored recommendation: %w", err)
	}

	enrichedCount := 0
	errorCount := 0

	for i, activity := range recommendation.Activities {
		if activity.Link == "" || activity.Description != "" {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		description, err := t.extractDescription(ctx, activity.Link)
		if err != nil {
			slog.Warn("Failed to enrich activity", "plan", t.PlanID, "activity", activity.Name, "url", activity.Link, "error", err)
			errorCount++
			continue
		}

		recommendation.Activities[i].Description = description
		enrichedCount++
	}

	if enrichedCount > 0 {
		serialized, err := json.Marshal(recommendation)
		if err != nil {
			return fmt.Errorf("failed to serialize enriched recommendation: %w", err)
		}
		if err := t.planRepo.UpdateRecommendation(t.PlanID, serialized); err != nil {
			return fmt.Errorf("failed to store enriched recommendation: %w", err)
		}
	}

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"plan", t.PlanID,
		"duration", t.GetDuration(),
		"enriched", enrichedCount,
		"errors", errorCount)

	return nil
}

func (t *EnrichActivitiesTask) extractDescription(ctx context.Context, pageURL string) (string, error) {
	data, err := t.fetchPage(ctx, pageURL)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	description := strings.TrimSpace(article.TextContent)
	if description == "" {
		return "", fmt.Errorf("no readable content extracted")
	}

	return truncateDescription(description), nil
}

// truncateDescription caps the text at maxDescriptionLength bytes,
// preferring a word boundary and never splitting a UTF-8 rune.
func truncateDescription(description string) string {
	if len(description) <= maxDescriptionLength {
		return description
	}

	cut := maxDescriptionLength
	for cut > 0 && !utf8.RuneStart(description[cut]) {
		cut--
	}
	description = description[:cut]
	if idx := strings.LastIndex(description, " "); idx > 0 {
		description = description[:idx]
	}
	return description + "…"
}

func (t *EnrichActivitiesTask) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
