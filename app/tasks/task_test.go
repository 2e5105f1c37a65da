package tasks

import (
	"testing"
	"time"
)

func TestNewTask_UniqueIDs(t *testing.T) {
	a := NewTask(TaskTypePlanTrip, "plan-1")
	b := NewTask(TaskTypePlanTrip, "plan-1")

	if a.ID == "" || b.ID == "" {
		t.Fatal("Expected non-empty task IDs")
	}
	if a.ID == b.ID {
		t.Errorf("Expected unique task IDs, both were %s", a.ID)
	}
}

func TestTask_RetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeCleanupPlans, "")

	if !task.CanRetry() {
		t.Errorf("Fresh task should be retryable")
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		task.IncrementRetryCount()
	}

	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
	if task.CanRetry() {
		t.Errorf("Task at max retries should not be retryable")
	}
}

func TestTask_Duration(t *testing.T) {
	task := NewTask(TaskTypePlanTrip, "plan-1")

	if task.GetDuration() != 0 {
		t.Errorf("Unstarted task should report zero duration")
	}

	task.Start()
	time.Sleep(5 * time.Millisecond)

	if task.GetDuration() <= 0 {
		t.Errorf("Started task should report positive duration")
	}
}
