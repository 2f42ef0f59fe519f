// Package worker runs the API server's periodic background jobs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newsdesk/internal/handler/http/respond"
	"newsdesk/internal/observability/metrics"
	envcfg "newsdesk/pkg/config"
)

// Counter reports how many bookmarks are stored.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StatsJob refreshes the saved-articles gauge. It implements cron.Job.
type StatsJob struct {
	Counter Counter
	Logger  *slog.Logger

	// Timeout bounds one refresh. Zero means 10s.
	Timeout time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run performs one refresh. Failures are logged and counted; the gauge keeps
// its last good value.
func (j *StatsJob) Run() {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_ = j.refresh(ctx)
}

func (j *StatsJob) refresh(ctx context.Context) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n, err := j.Counter.Count(ctx)
	if err != nil {
		metrics.RecordStatsRefresh(false, now())
		logger.Warn("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
		return err
	}

	metrics.UpdateSavedArticlesTotal(n)
	metrics.RecordStatsRefresh(true, now())
	logger.Debug("stats refreshed", slog.Int64("saved_articles", n))
	return nil
}

// Scheduler owns the cron runner for background jobs.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a UTC scheduler that skips a run while the previous
// one is still in progress.
func NewScheduler(logger *slog.Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{cron: cron.New(
		cron.WithLocation(time.UTC),
		cron.WithParser(envcfg.ScheduleParser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)}
}

// Add registers job under schedule, e.g. "@every 1m" or "*/5 * * * *".
func (s *Scheduler) Add(schedule string, job cron.Job) error {
	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return fmt.Errorf("add cron job %q: %w", schedule, err)
	}
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop prevents new runs and waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct{ logger *slog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}
