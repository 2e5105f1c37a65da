package tasks

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

type alwaysFailingTask struct {
	Task
	executions int32
}

func (t *alwaysFailingTask) Execute(context.Context) error {
	atomic.AddInt32(&t.executions, 1)
	return fmt.Errorf("provider unavailable")
}

func newTestScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		workerCount:     1,
		cleanupInterval: time.Hour,
		retention:       time.Hour,
		ctx:             ctx,
		cancel:          cancel,
		taskQueue:       make(chan TaskInterface, 8),
	}
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Condition was not met before timeout")
}

func TestScheduler_RetriesFailedTask(t *testing.T) {
	scheduler := newTestScheduler()
	scheduler.Start()
	defer scheduler.Stop()

	task := &alwaysFailingTask{Task: NewTask(TaskTypePlanTrip, "plan-1")}
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("Failed to enqueue task: %v", err)
	}

	// First retry is delayed one second
	waitFor(t, 5*time.Second, func() bool {
		return atomic.LoadInt32(&task.executions) >= 2
	})
}

func TestScheduler_StopWaitsOutPendingRetry(t *testing.T) {
	scheduler := newTestScheduler()
	scheduler.Start()

	task := &alwaysFailingTask{Task: NewTask(TaskTypePlanTrip, "plan-1")}
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("Failed to enqueue task: %v", err)
	}

	// Let the first execution fail and schedule its retry, then stop
	// while that retry timer is still pending. Stop must return
	// promptly and must not race the retry's enqueue.
	waitFor(t, 2*time.Second, func() bool {
		return atomic.LoadInt32(&task.executions) >= 1
	})

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while a retry was pending")
	}

	// Enqueue after Stop must not panic
	if err := scheduler.EnqueueTask(task); err != nil && err != context.Canceled {
		t.Errorf("Unexpected enqueue error after stop: %v", err)
	}
}
