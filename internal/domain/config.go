package domain

import "context"

// Identity is the persisted part of a Credential. The password is never stored.
type Identity struct {
	Realm          string   `yaml:"realm"`
	Username       string   `yaml:"username"`
	ExcludeServers []string `yaml:"exclude_servers,omitempty"`
}

// ConfigRepository manages the persisted adpasswd configuration.
type ConfigRepository interface {
	GetIdentity(ctx context.Context) (Identity, error)
	SetIdentity(ctx context.Context, identity Identity) error
	SaveConfig(ctx context.Context) error
	LoadConfig(ctx context.Context) error
}

// ConfigProvider provides configuration paths.
type ConfigProvider interface {
	GetConfigPath() (string, error)
	GetLegacyConfigPath() (string, error)
}
