package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"adpasswd/internal/commands"
	"adpasswd/internal/domain"
	"adpasswd/internal/output"
	"adpasswd/internal/services/metrics"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep checking the password expiry on an interval",
	Long: `Evaluate immediately and then once per interval until interrupted.

Every status is printed. With a webhook URL a JSON payload is posted whenever
the status level changes. With a metrics address the results are exposed as
Prometheus metrics on /metrics.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, map[string]string{
			"watch.interval":       "interval",
			"check.warn_threshold": "warn-threshold",
			"metrics.listen":       "metrics-listen",
			"notify.webhook_url":   "webhook-url",
		})
	},
	RunE: runWatch,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("interval", 0, "Time between evaluations (default 1h)")
	watchCmd.Flags().Duration("warn-threshold", 0, "Warn when the password expires within this duration (default 336h)")
	watchCmd.Flags().String("metrics-listen", "", "Serve Prometheus metrics on this address, e.g. 127.0.0.1:9465")
	watchCmd.Flags().String("webhook-url", "", "Post status changes to this URL")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := GetApp()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := app.Services.ResolveIdentity(cfg); err != nil {
		return err
	}

	// Tickets expire while watching, so ask for the password up front.
	password, err := commands.NewPasswordPrompt(app.PasswordReader, app.Logger).
		Resolve(ctx, cfg.Credential("").Principal(), nil)
	if err != nil {
		return err
	}

	evaluator, err := app.Services.Evaluator(cfg, password)
	if err != nil {
		return fmt.Errorf("failed to set up evaluation: %w", err)
	}

	reporters := []domain.StatusReporter{output.NewConsoleReporter(cmd.OutOrStdout())}
	if webhook := app.Services.Webhook(cfg); webhook != nil {
		reporters = append(reporters, webhook)
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Listen != "" {
		m := metrics.New()
		server, err := metrics.Listen(cfg.Metrics.Listen, m, app.Logger)
		if err != nil {
			return err
		}
		reporters = append(reporters, m)
		g.Go(func() error {
			return server.Serve(ctx)
		})
	}

	g.Go(func() error {
		return commands.NewWatchCommand(evaluator, reporters, app.Logger).
			Execute(ctx, commands.WatchRequest{
				Interval:      cfg.Watch.Interval,
				WarnThreshold: cfg.Check.WarnThreshold,
			})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
