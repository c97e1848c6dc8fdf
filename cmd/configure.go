package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"adpasswd/internal/commands"
	"adpasswd/internal/services/kerberos"
)

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	configureRealm    string
	configureUsername string
	configureExclude  []string
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store the account to check",
	Long: `Store the realm, username and excluded directory servers in the config file.

The realm defaults to default_realm from krb5.conf. The password is never
stored: set ADPASSWD_PASSWORD or enter it when asked.`,
	RunE: runConfigure,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringVarP(&configureRealm, "realm", "r", "", "Kerberos realm, e.g. CORP.EXAMPLE.COM")
	configureCmd.Flags().StringVarP(&configureUsername, "username", "u", "", "Account name without the realm")
	configureCmd.Flags().StringSliceVar(&configureExclude, "exclude-server", nil,
		"Regular expression for directory servers to skip (repeatable)")
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	app := GetApp()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := commands.ConfigureRequest{
		Realm:    configureRealm,
		Username: configureUsername,
		Krb5Conf: cfg.Tools.Krb5Conf,
	}
	if cmd.Flags().Changed("exclude-server") {
		req.ExcludeServers = configureExclude
	}

	result, err := commands.NewConfigureCommand(app.ConfigRepo, kerberos.DefaultRealm, app.Logger).
		Execute(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved %s@%s to %s\n", result.Identity.Username, result.Identity.Realm, app.ConfigPath)
	if result.RealmFromKrb5 {
		fmt.Fprintf(out, "Realm taken from %s\n", cfg.Tools.Krb5Conf)
	}
	return nil
}
