package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"adpasswd/internal/domain"
)

// Root Command Tests

func TestRootCommand_Structure(t *testing.T) {
	if rootCmd.Use != "adpasswd" {
		t.Errorf("Expected Use to be 'adpasswd', got: %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if rootCmd.Runnable() {
		t.Error("Expected root command to not be directly runnable (should only have subcommands)")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	expectedCommands := []string{"check", "watch", "configure", "tickets", "version"}
	foundCommands := make(map[string]bool)

	for _, cmd := range rootCmd.Commands() {
		foundCommands[cmd.Use] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected command '%s' to be registered", expected)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "verbose", "log-format"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("Expected '%s' persistent flag to be defined", name)
			continue
		}
		if flag.Usage == "" {
			t.Errorf("Expected '%s' flag to have usage text", name)
		}
	}

	if flag := rootCmd.PersistentFlags().Lookup("log-format"); flag != nil && flag.DefValue != "text" {
		t.Errorf("Expected log-format default to be 'text', got: %s", flag.DefValue)
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.InheritedFlags().Lookup("config") == nil {
			t.Errorf("Expected subcommand '%s' to inherit config flag", cmd.Use)
		}
	}
}

// resetGlobals restores the package state that initConfig and flags mutate.
func resetGlobals(t *testing.T) {
	t.Helper()
	originalCfgFile := cfgFile
	t.Cleanup(func() {
		cfgFile = originalCfgFile
		application = nil
		viper.Reset()
	})
}

// InitConfig Tests

func TestInitConfig_WithConfigFile(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `version: "1"
realm: CORP.EXAMPLE.COM
username: jdoe
watch:
  interval: 30m
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfgFile = configPath
	initConfig()

	if viper.ConfigFileUsed() != configPath {
		t.Errorf("Expected viper to use config file %s, got: %s", configPath, viper.ConfigFileUsed())
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.Realm != "CORP.EXAMPLE.COM" || cfg.Username != "jdoe" {
		t.Errorf("Expected identity jdoe@CORP.EXAMPLE.COM, got: %s@%s", cfg.Username, cfg.Realm)
	}
	if cfg.Watch.Interval != 30*time.Minute {
		t.Errorf("Expected interval 30m, got: %s", cfg.Watch.Interval)
	}
	if cfg.Check.WarnThreshold != 14*24*time.Hour {
		t.Errorf("Expected default warn threshold, got: %s", cfg.Check.WarnThreshold)
	}
}

func TestInitConfig_EnvironmentOverride(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ADPASSWD_REALM", "ENV.EXAMPLE.COM")
	t.Setenv("ADPASSWD_CHECK_WARN_THRESHOLD", "72h")

	cfgFile = ""
	initConfig()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.Realm != "ENV.EXAMPLE.COM" {
		t.Errorf("Expected realm from environment, got: %s", cfg.Realm)
	}
	if cfg.Check.WarnThreshold != 72*time.Hour {
		t.Errorf("Expected warn threshold 72h, got: %s", cfg.Check.WarnThreshold)
	}
}

func TestInitConfig_NoConfigFile(t *testing.T) {
	resetGlobals(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfgFile = ""
	initConfig()

	if GetApp() == nil {
		t.Fatal("Expected application to be initialized")
	}

	expected := filepath.Join(tempHome, ".config", "adpasswd", "config.yaml")
	if GetApp().ConfigPath != expected {
		t.Errorf("Expected config path %s, got: %s", expected, GetApp().ConfigPath)
	}

	if _, err := loadConfig(); err != nil {
		t.Errorf("Expected defaults to load without a config file, got: %v", err)
	}
}

func TestInitConfig_InvalidConfig(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ADPASSWD_TOOLS_FLAVOR", "kerberos5")

	cfgFile = ""
	initConfig()

	if _, err := loadConfig(); err == nil {
		t.Error("Expected validation error for unknown flavor")
	}
}

func TestLoadConfig_NotInitialized(t *testing.T) {
	resetGlobals(t)
	application = nil

	if _, err := loadConfig(); err == nil {
		t.Error("Expected error when application is not initialized")
	}
}

// parseCommandFlags parses args into cmd's flags and restores them afterwards.
func parseCommandFlags(t *testing.T, cmd *cobra.Command, args ...string) {
	t.Helper()
	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}
}

// Flag binding Tests

func TestCheckFlags_WarnThreshold(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())

	cfgFile = ""
	initConfig()

	// watch shares the key; binding it first must not hide check's flag
	if err := watchCmd.PreRunE(watchCmd, nil); err != nil {
		t.Fatalf("Failed to bind watch flags: %v", err)
	}

	parseCommandFlags(t, checkCmd, "--warn-threshold", "72h")
	if err := checkCmd.PreRunE(checkCmd, nil); err != nil {
		t.Fatalf("Failed to bind check flags: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.Check.WarnThreshold != 72*time.Hour {
		t.Errorf("Expected warn threshold 72h from flag, got: %s", cfg.Check.WarnThreshold)
	}
}

func TestCheckFlags_DefaultWhenUnset(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())

	cfgFile = ""
	initConfig()

	if err := checkCmd.PreRunE(checkCmd, nil); err != nil {
		t.Fatalf("Failed to bind check flags: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.Check.WarnThreshold != 14*24*time.Hour {
		t.Errorf("Expected default warn threshold, got: %s", cfg.Check.WarnThreshold)
	}
}

func TestWatchFlags(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())

	cfgFile = ""
	initConfig()

	if err := checkCmd.PreRunE(checkCmd, nil); err != nil {
		t.Fatalf("Failed to bind check flags: %v", err)
	}

	parseCommandFlags(t, watchCmd,
		"--warn-threshold", "48h",
		"--interval", "10m",
		"--metrics-listen", "127.0.0.1:9465",
		"--webhook-url", "https://hooks.example.com/adpasswd")
	if err := watchCmd.PreRunE(watchCmd, nil); err != nil {
		t.Fatalf("Failed to bind watch flags: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("Expected config to load, got: %v", err)
	}
	if cfg.Check.WarnThreshold != 48*time.Hour {
		t.Errorf("Expected warn threshold 48h, got: %s", cfg.Check.WarnThreshold)
	}
	if cfg.Watch.Interval != 10*time.Minute {
		t.Errorf("Expected interval 10m, got: %s", cfg.Watch.Interval)
	}
	if cfg.Metrics.Listen != "127.0.0.1:9465" {
		t.Errorf("Expected metrics address from flag, got: %s", cfg.Metrics.Listen)
	}
	if cfg.Notify.WebhookURL != "https://hooks.example.com/adpasswd" {
		t.Errorf("Expected webhook URL from flag, got: %s", cfg.Notify.WebhookURL)
	}
}

// Exit code Tests

func TestExitForLevel(t *testing.T) {
	tests := []struct {
		level domain.Level
		code  int
	}{
		{domain.LevelOK, exitOK},
		{domain.LevelWarn, exitWarn},
		{domain.LevelError, exitError},
	}

	for _, tt := range tests {
		err := exitForLevel(tt.level)
		if tt.code == exitOK {
			if err != nil {
				t.Errorf("Expected no error for %s, got: %v", tt.level, err)
			}
			continue
		}

		exitErr, ok := err.(*ExitError)
		if !ok {
			t.Errorf("Expected ExitError for %s, got: %v", tt.level, err)
			continue
		}
		if exitErr.Code != tt.code {
			t.Errorf("Expected exit code %d for %s, got: %d", tt.code, tt.level, exitErr.Code)
		}
	}
}

// Command execution Tests

func TestRun_Version(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())

	SetVersionInfo("1.2.3", "abc123", "2024-02-06", "make")
	defer SetVersionInfo("dev", "none", "unknown", "unknown")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}()

	if code := run(context.Background()); code != exitOK {
		t.Fatalf("Expected exit code 0, got: %d", code)
	}
	if !strings.Contains(out.String(), "adpasswd version 1.2.3") {
		t.Errorf("Expected version output, got: %s", out.String())
	}
}

func TestRun_Configure(t *testing.T) {
	resetGlobals(t)
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"configure", "--config", configPath, "--realm", "CORP.EXAMPLE.COM", "--username", "jdoe"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configureRealm, configureUsername = "", ""
	}()

	if code := run(context.Background()); code != exitOK {
		t.Fatalf("Expected exit code 0, got: %d", code)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Expected config file to be written: %v", err)
	}
	if !strings.Contains(string(data), "realm: CORP.EXAMPLE.COM") || !strings.Contains(string(data), "username: jdoe") {
		t.Errorf("Expected identity in config file, got:\n%s", data)
	}
	if strings.Contains(strings.ToLower(string(data)), "password") {
		t.Error("Expected no password in config file")
	}
	if !strings.Contains(out.String(), "Saved jdoe@CORP.EXAMPLE.COM") {
		t.Errorf("Expected confirmation output, got: %s", out.String())
	}
}
