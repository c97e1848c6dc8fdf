package commands

import (
	"context"
	"log/slog"
	"time"

	"adpasswd/internal/domain"
	"adpasswd/internal/services/watch"
)

// CheckCommand runs a single password freshness evaluation.
type CheckCommand struct {
	evaluator domain.FreshnessEvaluator
	reporters []domain.StatusReporter
	logger    *slog.Logger
}

// NewCheckCommand creates a new check command.
func NewCheckCommand(
	evaluator domain.FreshnessEvaluator,
	reporters []domain.StatusReporter,
	logger *slog.Logger,
) *CheckCommand {
	return &CheckCommand{
		evaluator: evaluator,
		reporters: reporters,
		logger:    logger,
	}
}

// CheckRequest contains the parameters for the check command.
type CheckRequest struct {
	WarnThreshold time.Duration
}

// CheckResult contains the result of the check command.
type CheckResult struct {
	Status domain.Status
}

// Execute runs one evaluation and reports it. Evaluation failures are part
// of the returned status, not an error.
func (c *CheckCommand) Execute(ctx context.Context, req CheckRequest) *CheckResult {
	scheduler := watch.NewScheduler(c.evaluator, c.logger,
		watch.WithWarnThreshold(req.WarnThreshold),
		watch.WithReporters(c.reporters...))

	status := scheduler.RunOnce(ctx)

	c.logger.DebugContext(ctx, "Check finished", "level", status.Level.String(), "message", status.Message)
	return &CheckResult{Status: status}
}
