// Package watch re-evaluates password freshness on a fixed interval and
// fans every status out to the configured reporters.
package watch

import (
	"context"
	"log/slog"
	"time"

	"adpasswd/internal/domain"
	"adpasswd/internal/services/freshness"
)

// DefaultInterval is used when no positive interval is configured.
const DefaultInterval = time.Hour

// TickerFunc starts a ticker and returns its channel and a stop function.
type TickerFunc func(interval time.Duration) (<-chan time.Time, func())

// Scheduler runs one evaluation at a time. Ticks that arrive while an
// evaluation is in flight are dropped by the underlying ticker.
type Scheduler struct {
	evaluator domain.FreshnessEvaluator
	reporters []domain.StatusReporter
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time
	newTicker TickerFunc
	logger    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the time between evaluations.
func WithInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithWarnThreshold sets the remaining time below which a status warns.
func WithWarnThreshold(threshold time.Duration) Option {
	return func(s *Scheduler) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

// WithReporters appends status reporters.
func WithReporters(reporters ...domain.StatusReporter) Option {
	return func(s *Scheduler) {
		for _, r := range reporters {
			if r != nil {
				s.reporters = append(s.reporters, r)
			}
		}
	}
}

// WithClock overrides the clock used to stamp statuses.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithTicker overrides how the interval ticker is created.
func WithTicker(newTicker TickerFunc) Option {
	return func(s *Scheduler) {
		s.newTicker = newTicker
	}
}

// NewScheduler creates a scheduler around evaluator.
func NewScheduler(evaluator domain.FreshnessEvaluator, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		evaluator: evaluator,
		interval:  DefaultInterval,
		threshold: freshness.DefaultWarnThreshold,
		now:       time.Now,
		newTicker: timeTicker,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func timeTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Run evaluates immediately and then once per interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Watching password expiry", "interval", s.interval.String())

	s.RunOnce(ctx)

	ticks, stop := s.newTicker(s.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Stopped watching password expiry")
			return nil
		case <-ticks:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs one evaluation, reports it and returns the status.
func (s *Scheduler) RunOnce(ctx context.Context) domain.Status {
	started := s.now()
	result := s.evaluator.Evaluate(ctx)
	finished := s.now()

	status := freshness.Classify(result, s.threshold)
	status.CheckedAt = finished
	status.Duration = finished.Sub(started)

	s.logger.DebugContext(ctx, "Evaluation finished",
		"result", result.String(),
		"level", status.Level.String(),
		"duration", status.Duration.String())

	for _, reporter := range s.reporters {
		if err := reporter.Report(ctx, status); err != nil {
			s.logger.WarnContext(ctx, "Failed to report status", "error", err)
		}
	}

	return status
}
