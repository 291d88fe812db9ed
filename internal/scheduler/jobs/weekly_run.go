package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/almanac/internal/pipeline"
	"github.com/wonny/almanac/pkg/logger"
)

// WeeklyRunJob executes the full reporting pipeline for one domain on a
// schedule. The snapshot pair for a domain is single-writer: the
// scheduler is that writer, so overlapping runs never happen.
type WeeklyRunJob struct {
	runner   *pipeline.Runner
	domain   string
	schedule string
	logger   *logger.Logger
}

// NewWeeklyRunJob creates the weekly run job. An empty schedule falls
// back to Monday 6 AM, the traditional standings-day slot.
func NewWeeklyRunJob(runner *pipeline.Runner, domain, schedule string, log *logger.Logger) *WeeklyRunJob {
	if schedule == "" {
		schedule = "0 6 * * 1"
	}
	return &WeeklyRunJob{
		runner:   runner,
		domain:   domain,
		schedule: schedule,
		logger:   log,
	}
}

// Name implements scheduler.Job
func (j *WeeklyRunJob) Name() string {
	return fmt.Sprintf("weekly-run-%s", j.domain)
}

// Schedule implements scheduler.Job
func (j *WeeklyRunJob) Schedule() string {
	return j.schedule
}

// Run implements scheduler.Job
func (j *WeeklyRunJob) Run(ctx context.Context) error {
	result, err := j.runner.Run(ctx, j.domain)
	if err != nil {
		return fmt.Errorf("weekly run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"domain":    result.Domain,
		"teams":     len(result.Teams),
		"first_run": result.FirstRun,
	}).Info("Weekly run finished")

	return nil
}
