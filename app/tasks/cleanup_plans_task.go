package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ormakov/trip-comb/app/database"
)

// CleanupPlansTask prunes plans older than the configured retention.
type CleanupPlansTask struct {
	Task
	planRepo  database.PlanRepository
	retention time.Duration
}

func NewCleanupPlansTask(planRepo database.PlanRepository, retention time.Duration) *CleanupPlansTask {
	return &CleanupPlansTask{
		Task:      NewTask(TaskTypeCleanupPlans, ""),
		planRepo:  planRepo,
		retention: retention,
	}
}

func (t *CleanupPlansTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().UTC().Add(-t.retention)

	deleted, err := t.planRepo.DeletePlansBefore(cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete expired plans: %w", err)
	}

	if deleted > 0 {
		slog.Info("Task completed",
			"type", string(t.GetType()),
			"duration", t.GetDuration(),
			"deleted", deleted)
	}

	return nil
}
