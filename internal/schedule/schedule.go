// Package schedule periodically rebuilds the eruption report and publishes it.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/couchcryptid/volcano-analytics/internal/observability"
	"github.com/couchcryptid/volcano-analytics/internal/report"
	"github.com/robfig/cron/v3"
)

const (
	publishAttempts   = 3
	publishBackoff    = 500 * time.Millisecond
	publishMaxBackoff = 5 * time.Second
)

// Publisher delivers a built report.
type Publisher interface {
	Publish(ctx context.Context, r report.Report) error
}

// ReportJob builds a report and hands it to a Publisher. It implements cron.Job.
type ReportJob struct {
	querier   report.Querier
	opts      report.Options
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	timeout   time.Duration

	attempts   int
	backoff    time.Duration
	maxBackoff time.Duration
}

// NewReportJob creates a ReportJob. Each run is bounded by timeout.
func NewReportJob(q report.Querier, opts report.Options, p Publisher, logger *slog.Logger, metrics *observability.Metrics, timeout time.Duration) *ReportJob {
	return &ReportJob{
		querier:   q,
		opts:      opts,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
		timeout:   timeout,

		attempts:   publishAttempts,
		backoff:    publishBackoff,
		maxBackoff: publishMaxBackoff,
	}
}

// Run satisfies cron.Job. Failures are logged and counted, never returned.
func (j *ReportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.RunOnce(ctx); err != nil {
		j.logger.Error("scheduled report failed", "error", err)
	}
}

// RunOnce builds and publishes a single report.
func (j *ReportJob) RunOnce(ctx context.Context) error {
	r, err := report.Build(j.querier, j.opts)
	if err != nil {
		j.metrics.ReportPublishErrors.Inc()
		return err
	}
	if err := j.publish(ctx, r); err != nil {
		j.metrics.ReportPublishErrors.Inc()
		return err
	}
	j.metrics.ReportsPublished.Inc()
	j.logger.Info("report published", "report_id", r.ID, "records", r.Count)
	return nil
}

// publish retries transient publisher failures with exponential backoff.
func (j *ReportJob) publish(ctx context.Context, r report.Report) error {
	backoff := j.backoff
	var err error
	for attempt := 1; attempt <= j.attempts; attempt++ {
		if err = j.publisher.Publish(ctx, r); err == nil {
			return nil
		}
		if attempt == j.attempts {
			break
		}
		j.logger.Warn("report publish failed, retrying",
			"report_id", r.ID, "attempt", attempt, "backoff", backoff, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			return fmt.Errorf("publish report %s: %w", r.ID, ctx.Err())
		}
		backoff = retry.NextBackoff(backoff, j.maxBackoff)
	}
	return fmt.Errorf("publish report %s after %d attempts: %w", r.ID, j.attempts, err)
}

// Scheduler runs a job on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	expr   string
	logger *slog.Logger
}

// New creates a Scheduler running job on the cron expression expr, e.g. "@every 1h" or "0 * * * *".
func New(expr string, job cron.Job, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddJob(expr, job); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", expr, err)
	}
	return &Scheduler{cron: c, expr: expr, logger: logger}, nil
}

// Start begins running the job in the background.
func (s *Scheduler) Start() {
	s.logger.Info("report scheduler started", "schedule", s.expr)
	s.cron.Start()
}

// Stop prevents new runs and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
