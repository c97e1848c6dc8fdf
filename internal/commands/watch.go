package commands

import (
	"context"
	"log/slog"
	"time"

	"adpasswd/internal/domain"
	"adpasswd/internal/services/watch"
)

// WatchCommand re-evaluates password freshness until cancelled.
type WatchCommand struct {
	evaluator domain.FreshnessEvaluator
	reporters []domain.StatusReporter
	logger    *slog.Logger
}

// NewWatchCommand creates a new watch command.
func NewWatchCommand(
	evaluator domain.FreshnessEvaluator,
	reporters []domain.StatusReporter,
	logger *slog.Logger,
) *WatchCommand {
	return &WatchCommand{
		evaluator: evaluator,
		reporters: reporters,
		logger:    logger,
	}
}

// WatchRequest contains the parameters for the watch command.
type WatchRequest struct {
	Interval      time.Duration
	WarnThreshold time.Duration
	Ticker        watch.TickerFunc // nil uses a real ticker
}

// Execute blocks until ctx is cancelled.
func (c *WatchCommand) Execute(ctx context.Context, req WatchRequest) error {
	opts := []watch.Option{
		watch.WithInterval(req.Interval),
		watch.WithWarnThreshold(req.WarnThreshold),
		watch.WithReporters(c.reporters...),
	}
	if req.Ticker != nil {
		opts = append(opts, watch.WithTicker(req.Ticker))
	}

	return watch.NewScheduler(c.evaluator, c.logger, opts...).Run(ctx)
}
