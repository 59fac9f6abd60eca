package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup pre-populates the dashboard series cache.
	TaskDashboardWarmup = "dashboard:warmup"
)

// DashboardWarmupPayload configures a warmup run.
type DashboardWarmupPayload struct {
	// BumpFirst forces a cache version bump before warming, producing a
	// freshly computed series instead of re-serving the cached one.
	BumpFirst bool `json:"bump_first"`
}

// NewDashboardWarmupTask constructs an Asynq task.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}
