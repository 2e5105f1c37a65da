package database

import (
	"time"
)

// Plan statuses, in lifecycle order.
const (
	PlanStatusPlanning  = "planning"
	PlanStatusCompleted = "completed"
	PlanStatusFailed    = "failed"
)

// Plan is a stored asynchronous planning job with its eventual result.
type Plan struct {
	ID             string
	Origin         string
	Destination    string
	Date           string // optional preferred departure date (YYYY-MM-DD)
	Notes          string
	Status         string
	Recommendation []byte // serialized travel.Recommendation, set when completed
	Sources        []string
	Error          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}
