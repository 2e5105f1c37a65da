package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PlanRepositoryImpl handles database operations for travel plans
type PlanRepositoryImpl struct {
	db *DB
}

var _ PlanRepository = (*PlanRepositoryImpl)(nil)

func NewPlanRepository(db *DB) *PlanRepositoryImpl {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) CreatePlan(plan Plan) error {
	_, err := r.db.Exec(`
		INSERT INTO plans (id, origin, destination, travel_date, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, plan.ID, plan.Origin, plan.Destination, plan.Date, plan.Notes, PlanStatusPlanning)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

func (r *PlanRepositoryImpl) GetPlan(id string) (*Plan, error) {
	var plan Plan
	var recommendation sql.NullString
	var planError sql.NullString
	var completedAt sql.NullTime

	err := r.db.QueryRow(`
		SELECT id, origin, destination, travel_date, notes, status,
		       recommendation, sources, error, created_at, updated_at, completed_at
		FROM plans
		WHERE id = $1
	`, id).Scan(&plan.ID, &plan.Origin, &plan.Destination, &plan.Date, &plan.Notes,
		&plan.Status, &recommendation, pq.Array(&plan.Sources), &planError,
		&plan.CreatedAt, &plan.UpdatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if recommendation.Valid {
		plan.Recommendation = []byte(recommendation.String)
	}
	if planError.Valid {
		plan.Error = planError.String
	}
	if completedAt.Valid {
		plan.CompletedAt = &completedAt.Time
	}

	return &plan, nil
}

func (r *PlanRepositoryImpl) MarkPlanCompleted(id string, recommendation []byte, sources []string) error {
	result, err := r.db.Exec(`
		UPDATE plans
		SET status = $2, recommendation = $3, sources = $4,
		    completed_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id, PlanStatusCompleted, string(recommendation), pq.Array(sources))
	if err != nil {
		return fmt.Errorf("failed to mark plan completed: %w", err)
	}
	return requireRow(result, id)
}

func (r *PlanRepositoryImpl) MarkPlanFailed(id string, reason string) error {
	result, err := r.db.Exec(`
		UPDATE plans
		SET status = $2, error = $3, updated_at = NOW()
		WHERE id = $1
	`, id, PlanStatusFailed, reason)
	if err != nil {
		return fmt.Errorf("failed to mark plan failed: %w", err)
	}
	return requireRow(result, id)
}

func (r *PlanRepositoryImpl) UpdateRecommendation(id string, recommendation []byte) error {
	result, err := r.db.Exec(`
		UPDATE plans
		SET recommendation = $2, updated_at = NOW()
		WHERE id = $1
	`, id, string(recommendation))
	if err != nil {
		return fmt.Errorf("failed to update recommendation: %w", err)
	}
	return requireRow(result, id)
}

func (r *PlanRepositoryImpl) GetPlanCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM plans`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plans: %w", err)
	}
	return count, nil
}

func (r *PlanRepositoryImpl) GetPlanStats() (int, int, int, error) {
	var planning, completed, failed int
	err := r.db.QueryRow(`
		SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3)
		FROM plans
	`, PlanStatusPlanning, PlanStatusCompleted, PlanStatusFailed).Scan(&planning, &completed, &failed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get plan stats: %w", err)
	}
	return planning, completed, failed, nil
}

func (r *PlanRepositoryImpl) DeletePlansBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM plans WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired plans: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted plans: %w", err)
	}
	return deleted, nil
}

func requireRow(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan not found: %s", id)
	}
	return nil
}
