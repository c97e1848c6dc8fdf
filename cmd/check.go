package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"adpasswd/internal/commands"
	"adpasswd/internal/domain"
	"adpasswd/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check once how long until the password expires",
	Long: `Run a single evaluation and print the result.

Exit status is 0 when the password is fine, 1 when it expires within the
warning threshold (or already has) and 2 when the expiry could not be
determined.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd, map[string]string{
			"check.warn_threshold": "warn-threshold",
		})
	},
	RunE: runCheck,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Duration("warn-threshold", 0, "Warn when the password expires within this duration (default 336h)")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	app := GetApp()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := app.Services.ResolveIdentity(cfg); err != nil {
		return err
	}

	reader, err := app.Services.TicketReader(cfg)
	if err != nil {
		return err
	}
	password, err := commands.NewPasswordPrompt(app.PasswordReader, app.Logger).
		Resolve(ctx, cfg.Credential("").Principal(), reader)
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

	result := commands.NewCheckCommand(evaluator, reporters, app.Logger).
		Execute(ctx, commands.CheckRequest{WarnThreshold: cfg.Check.WarnThreshold})

	return exitForLevel(result.Status.Level)
}

func exitForLevel(level domain.Level) error {
	switch level {
	case domain.LevelOK:
		return nil
	case domain.LevelWarn:
		return &ExitError{Code: exitWarn}
	default:
		return &ExitError{Code: exitError}
	}
}
