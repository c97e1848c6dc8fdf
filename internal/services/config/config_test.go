package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "adpasswd/internal/errors"
	"adpasswd/internal/services/config"
)

func TestValidate_DefaultConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()

	err := config.Validate(cfg)
	if err != nil {
		t.Errorf("Expected default config to pass validation, got error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		rule   string
	}{
		{
			name:   "unknown flavor",
			mutate: func(c *config.Config) { c.Tools.Flavor = "shishi" },
			rule:   "oneof",
		},
		{
			name:   "zero threshold",
			mutate: func(c *config.Config) { c.Check.WarnThreshold = 0 },
			rule:   "gt",
		},
		{
			name:   "interval too short",
			mutate: func(c *config.Config) { c.Watch.Interval = time.Second },
			rule:   "gte",
		},
		{
			name:   "empty attribute",
			mutate: func(c *config.Config) { c.Check.Attribute = "" },
			rule:   "required",
		},
		{
			name:   "bad webhook url",
			mutate: func(c *config.Config) { c.Notify.WebhookURL = "not a url" },
			rule:   "url",
		},
		{
			name:   "bad metrics listen address",
			mutate: func(c *config.Config) { c.Metrics.Listen = "localhost" },
			rule:   "hostname_port",
		},
		{
			name:   "username with realm",
			mutate: func(c *config.Config) { c.Username = "alice@CORP" },
			rule:   "excludesall",
		},
		{
			name:   "empty exclude pattern",
			mutate: func(c *config.Config) { c.ExcludeServers = []string{""} },
			rule:   "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			tt.mutate(cfg)

			err := config.Validate(cfg)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, err.Error(), "'"+tt.rule+"'")
		})
	}
}

func TestValidate_AcceptsListenWithoutHost(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Metrics.Listen = ":9090"
	cfg.Notify.WebhookURL = "https://hooks.example.com/adpasswd"

	assert.NoError(t, config.Validate(cfg))
}

func TestRequireIdentity(t *testing.T) {
	cfg := config.GetDefaultConfig()

	err := config.RequireIdentity(cfg)
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "realm")

	cfg.Realm = "CORP.EXAMPLE.COM"
	err = config.RequireIdentity(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username")

	cfg.Username = "alice"
	assert.NoError(t, config.RequireIdentity(cfg))
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		`version: "1"`,
		"realm: CORP.EXAMPLE.COM",
		"username: alice",
		"check:",
		"  warn_threshold: 168h",
		"tools:",
		"  flavor: heimdal",
	}, "\n")), 0o600))

	t.Setenv("ADPASSWD_USERNAME", "bob")
	t.Setenv("ADPASSWD_WATCH_INTERVAL", "2h")
	t.Setenv("ADPASSWD_EXCLUDE_SERVERS", `^rodc,\.branch\.`)

	v := viper.New()
	config.ConfigureViper(v, path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := config.Load(v)

	require.NoError(t, err)
	assert.Equal(t, "CORP.EXAMPLE.COM", cfg.Realm)
	assert.Equal(t, "bob", cfg.Username, "environment overrides the file")
	assert.Equal(t, 7*24*time.Hour, cfg.Check.WarnThreshold)
	assert.Equal(t, 2*time.Hour, cfg.Watch.Interval)
	assert.Equal(t, []string{"^rodc", `\.branch\.`}, cfg.ExcludeServers)
	assert.Equal(t, "heimdal", cfg.Tools.Flavor)
	assert.Equal(t, config.DefaultAttribute, cfg.Check.Attribute)
	assert.Equal(t, config.DefaultKinitTimeout, cfg.Tools.KinitTimeout)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.Load(v)

	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfig(), cfg)
}

func TestLoad_ValidationFailure(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("tools.flavor", "bogus")

	_, err := config.Load(v)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestConfig_Credential(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Realm = "CORP.EXAMPLE.COM"
	cfg.Username = "alice"

	cred := cfg.Credential("s3cret")

	assert.Equal(t, "alice@CORP.EXAMPLE.COM", cred.Principal())
	assert.True(t, cred.HasPassword())
}
