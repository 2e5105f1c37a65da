package database

import (
	"time"
)

type PlanRepository interface {
	CreatePlan(plan Plan) error
	GetPlan(id string) (*Plan, error)
	MarkPlanCompleted(id string, recommendation []byte, sources []string) error
	MarkPlanFailed(id string, reason string) error
	UpdateRecommendation(id string, recommendation []byte) error
	GetPlanCount() (int, error)
	GetPlanStats() (planning int, completed int, failed int, err error)
	DeletePlansBefore(cutoff time.Time) (int64, error)
}
