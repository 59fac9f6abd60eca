package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/muniworks/overtime/internal/dashboard"
)

// DashboardWarmupJob rebuilds the dashboard series cache so the first
// morning request does not pay the aggregation cost.
type DashboardWarmupJob struct {
	Service *dashboard.Service
	Cache   *dashboard.Cache
	Logger  *slog.Logger
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(service *dashboard.Service, cache *dashboard.Cache, logger *slog.Logger) *DashboardWarmupJob {
	return &DashboardWarmupJob{Service: service, Cache: cache, Logger: logger}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger()
	start := time.Now()

	jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if payload.BumpFirst && j.Cache != nil {
		if err := j.Cache.Bump(jobCtx); err != nil {
			logger.Error("bump dashboard cache", slog.Any("error", err))
			return err
		}
	}

	series, err := j.Service.GetSeries(jobCtx)
	if err != nil {
		logger.Error("warm dashboard series", slog.Any("error", err))
		return err
	}

	logger.Info("completed dashboard warmup",
		slog.Int("bar_points", len(series.Bars)),
		slog.Int("pie_points", len(series.Pie)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}
