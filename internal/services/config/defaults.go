package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for every configuration key.
const (
	DefaultWarnThreshold = 14 * 24 * time.Hour
	DefaultAttribute     = "msDS-UserPasswordExpiryTimeComputed"
	DefaultInterval      = time.Hour
	DefaultToolTimeout   = 5 * time.Second
	DefaultKinitTimeout  = 15 * time.Second
	DefaultKrb5Conf      = "/etc/krb5.conf"
	DefaultNotifyTimeout = 10 * time.Second
)

// GetDefaultConfig returns a configuration with every default applied and no identity.
func GetDefaultConfig() *Config {
	return &Config{
		Version:        configVersion,
		ExcludeServers: []string{},
		Check: CheckConfig{
			WarnThreshold: DefaultWarnThreshold,
			Attribute:     DefaultAttribute,
		},
		Watch: WatchConfig{
			Interval: DefaultInterval,
		},
		Tools: ToolsConfig{
			Klist:        "klist",
			Kinit:        "kinit",
			LDAPSearch:   "ldapsearch",
			Flavor:       "auto",
			Timeout:      DefaultToolTimeout,
			KinitTimeout: DefaultKinitTimeout,
			Krb5Conf:     DefaultKrb5Conf,
		},
		Notify: NotifyConfig{
			Timeout: DefaultNotifyTimeout,
		},
	}
}

// SetDefaults registers every key on v so environment overrides are honoured
// even when the config file omits the key.
func SetDefaults(v *viper.Viper) {
	d := GetDefaultConfig()

	v.SetDefault("version", d.Version)
	v.SetDefault("realm", "")
	v.SetDefault("username", "")
	v.SetDefault("exclude_servers", d.ExcludeServers)

	v.SetDefault("check.warn_threshold", d.Check.WarnThreshold)
	v.SetDefault("check.attribute", d.Check.Attribute)

	v.SetDefault("watch.interval", d.Watch.Interval)

	v.SetDefault("tools.klist", d.Tools.Klist)
	v.SetDefault("tools.kinit", d.Tools.Kinit)
	v.SetDefault("tools.ldapsearch", d.Tools.LDAPSearch)
	v.SetDefault("tools.flavor", d.Tools.Flavor)
	v.SetDefault("tools.ccache", d.Tools.CCache)
	v.SetDefault("tools.timeout", d.Tools.Timeout)
	v.SetDefault("tools.kinit_timeout", d.Tools.KinitTimeout)
	v.SetDefault("tools.krb5_conf", d.Tools.Krb5Conf)

	v.SetDefault("notify.webhook_url", d.Notify.WebhookURL)
	v.SetDefault("notify.timeout", d.Notify.Timeout)

	v.SetDefault("metrics.listen", d.Metrics.Listen)
}
