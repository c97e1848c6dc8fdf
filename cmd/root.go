package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"adpasswd/internal/app"
	"adpasswd/internal/logging"
	"adpasswd/internal/services/config"
)

// Exit codes shared by every command.
const (
	exitOK    = 0
	exitWarn  = 1
	exitError = 2
)

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile   string
	verbose   bool
	logFormat string

	application *app.App
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// GetApp returns the initialized application instance.
func GetApp() *app.App {
	return application
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "adpasswd",
	Short: "Check how long until an Active Directory password expires",
	Long: `adpasswd uses the local Kerberos credential cache to query Active Directory
for the time left before your account password expires.

It renews the ticket-granting ticket with kinit when needed, discovers the
domain controllers through DNS SRV records and reads the computed expiry
attribute with ldapsearch.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and exits with the command's exit code.
func Execute() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitError
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/adpasswd/config.yaml)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().
		StringVar(&logFormat, "log-format", logging.FormatText, "Log format: text or json")
}

func initConfig() {
	opts := []app.Option{app.WithLogFormat(logFormat)}
	if verbose {
		opts = append(opts, app.WithVerbose(true))
	}
	if cfgFile != "" {
		opts = append(opts, app.WithConfigPath(cfgFile))
	}

	// The repository migrates a legacy configuration before viper reads the file.
	var err error
	application, err = app.NewApp(context.Background(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(exitError)
	}

	config.ConfigureViper(viper.GetViper(), application.ConfigPath)

	// Read config file silently (defaults and environment still apply)
	if err := viper.ReadInConfig(); err != nil {
		application.Logger.Debug("No config file read", "path", application.ConfigPath, "error", err)
	}
}

// bindFlags binds cmd's flags to config keys. Commands bind when they run,
// since viper holds a single flag per key and several commands share keys.
func bindFlags(cmd *cobra.Command, flagsByKey map[string]string) error {
	for key, name := range flagsByKey {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig returns the effective configuration: defaults, file, environment and flags.
func loadConfig() (*config.Config, error) {
	if GetApp() == nil {
		return nil, errors.New("application not initialized")
	}
	return config.Load(viper.GetViper())
}
