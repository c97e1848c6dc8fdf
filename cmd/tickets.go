package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"adpasswd/internal/commands"
	"adpasswd/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "List the valid tickets in the credential cache",
	Long:  `Run klist and show the unexpired tickets of the configured credential cache.`,
	RunE:  runTickets,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(ticketsCmd)
}

func runTickets(cmd *cobra.Command, _ []string) error {
	app := GetApp()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reader, err := app.Services.TicketReader(cfg)
	if err != nil {
		return err
	}

	result, err := commands.NewTicketsCommand(reader, app.Logger).Execute(cmd.Context())
	if err != nil {
		return err
	}

	if len(result.Tickets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No valid tickets. Run 'adpasswd check' to request one.")
		return nil
	}

	if err := output.PrintTable(cmd.OutOrStdout(), output.NewTicketTable(result.Tickets, time.Now())); err != nil {
		return err
	}
	if !result.HasTGT {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNo ticket-granting ticket in the cache.")
	}
	return nil
}
