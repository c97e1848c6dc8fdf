// Package config loads, validates and persists the adpasswd configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"adpasswd/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. ADPASSWD_REALM.
const EnvPrefix = "ADPASSWD"

// Config is the complete adpasswd configuration.
type Config struct {
	Version        string        `mapstructure:"version" yaml:"version"`
	Realm          string        `mapstructure:"realm" validate:"omitempty,hostname_rfc1123" yaml:"realm"`
	Username       string        `mapstructure:"username" validate:"omitempty,max=256,excludesall=@" yaml:"username"`
	ExcludeServers []string      `mapstructure:"exclude_servers" validate:"dive,required" yaml:"exclude_servers,omitempty"`
	Check          CheckConfig   `mapstructure:"check" yaml:"check"`
	Watch          WatchConfig   `mapstructure:"watch" yaml:"watch"`
	Tools          ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Notify         NotifyConfig  `mapstructure:"notify" yaml:"notify"`
	Metrics        MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// CheckConfig controls how an evaluation is classified.
type CheckConfig struct {
	WarnThreshold time.Duration `mapstructure:"warn_threshold" validate:"gt=0" yaml:"warn_threshold"`
	Attribute     string        `mapstructure:"attribute" validate:"required" yaml:"attribute"`
}

// WatchConfig controls the recurring evaluation.
type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"gte=1m" yaml:"interval"`
}

// ToolsConfig locates the external Kerberos and LDAP tools.
type ToolsConfig struct {
	Klist        string        `mapstructure:"klist" validate:"required" yaml:"klist"`
	Kinit        string        `mapstructure:"kinit" validate:"required" yaml:"kinit"`
	LDAPSearch   string        `mapstructure:"ldapsearch" validate:"required" yaml:"ldapsearch"`
	Flavor       string        `mapstructure:"flavor" validate:"oneof=auto mit heimdal" yaml:"flavor"`
	CCache       string        `mapstructure:"ccache" yaml:"ccache,omitempty"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0" yaml:"timeout"`
	KinitTimeout time.Duration `mapstructure:"kinit_timeout" validate:"gt=0" yaml:"kinit_timeout"`
	Krb5Conf     string        `mapstructure:"krb5_conf" yaml:"krb5_conf"`
}

// NotifyConfig configures the status webhook.
type NotifyConfig struct {
	WebhookURL string        `mapstructure:"webhook_url" validate:"omitempty,url" yaml:"webhook_url,omitempty"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0" yaml:"timeout"`
}

// MetricsConfig configures the Prometheus endpoint of the watch command.
type MetricsConfig struct {
	Listen string `mapstructure:"listen" validate:"omitempty,hostname_port" yaml:"listen,omitempty"`
}

// Identity returns the persisted account identity.
func (c *Config) Identity() domain.Identity {
	return domain.Identity{
		Realm:          c.Realm,
		Username:       c.Username,
		ExcludeServers: c.ExcludeServers,
	}
}

// SetIdentity replaces the account identity.
func (c *Config) SetIdentity(identity domain.Identity) {
	c.Realm = identity.Realm
	c.Username = identity.Username
	c.ExcludeServers = identity.ExcludeServers
}

// Credential combines the configured identity with a password obtained at runtime.
func (c *Config) Credential(password string) domain.Credential {
	return domain.Credential{
		Realm:    c.Realm,
		Username: c.Username,
		Password: password,
	}
}

// Load unmarshals v into a Config and validates it. Defaults must already be
// registered on v with SetDefaults.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ConfigureViper wires environment overrides and the config file into v.
func ConfigureViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	SetDefaults(v)
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
