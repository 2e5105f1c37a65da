package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the API layer to submit asynchronous plan jobs and by tasks that
// chain follow-up work.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
