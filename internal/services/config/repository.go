package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"adpasswd/internal/domain"
	"adpasswd/internal/migrations"
)

const (
	dirPermissions  = 0o700 // Owner-only access for security
	filePermissions = 0o600 // Read/write owner only
	configVersion   = migrations.CurrentVersion
)

// Repository handles configuration persistence.
type Repository struct {
	fs         domain.FileSystemAdapter
	configPath string
	legacyPath string
	config     *Config
	migrator   migrations.ConfigMigrator
	logger     *slog.Logger
}

// NewRepository creates a new configuration repository. When no config file
// exists yet and legacyPath holds a configuration from an earlier release, it
// is migrated and written to configPath.
func NewRepository(
	fs domain.FileSystemAdapter,
	configPath string,
	legacyPath string,
	logger *slog.Logger,
) (*Repository, error) {
	repo := &Repository{
		fs:         fs,
		configPath: configPath,
		legacyPath: legacyPath,
		config:     GetDefaultConfig(),
		migrator:   migrations.NewMigrator(logger),
		logger:     logger,
	}

	configDir := filepath.Dir(configPath)
	if err := fs.MkdirAll(configDir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := repo.LoadConfig(context.Background()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to load existing config, starting with defaults", "error", err)
		}
	}

	return repo, nil
}

// Config returns the configuration as stored on disk.
func (r *Repository) Config() *Config {
	return r.config
}

// GetIdentity returns the configured account identity.
func (r *Repository) GetIdentity(ctx context.Context) (domain.Identity, error) {
	identity := r.config.Identity()
	r.logger.DebugContext(ctx, "Getting identity from config", "realm", identity.Realm, "username", identity.Username)
	return identity, nil
}

// SetIdentity replaces the account identity and saves the configuration.
func (r *Repository) SetIdentity(ctx context.Context, identity domain.Identity) error {
	previous := r.config.Identity()
	r.config.SetIdentity(identity)

	if err := Validate(r.config); err != nil {
		r.config.SetIdentity(previous) // Rollback
		return err
	}

	if err := r.SaveConfig(ctx); err != nil {
		r.config.SetIdentity(previous) // Rollback
		return fmt.Errorf("failed to save configuration after updating identity: %w", err)
	}

	r.logger.InfoContext(ctx, "Updated identity in configuration",
		"realm", identity.Realm,
		"username", identity.Username,
		"exclude_servers", len(identity.ExcludeServers))
	return nil
}

// SaveConfig saves the current configuration to disk.
func (r *Repository) SaveConfig(ctx context.Context) error {
	data, err := yaml.Marshal(r.config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if writeErr := r.fs.WriteFile(r.configPath, data, filePermissions); writeErr != nil {
		return fmt.Errorf("failed to write configuration file: %w", writeErr)
	}

	r.logger.DebugContext(ctx, "Configuration saved", "path", r.configPath)
	return nil
}

// LoadConfig loads the configuration from disk, falling back to migrating the
// legacy configuration when the current file does not exist.
func (r *Repository) LoadConfig(ctx context.Context) error {
	data, err := r.fs.ReadFile(r.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.DebugContext(ctx, "Configuration file does not exist", "path", r.configPath)
			return r.migrateLegacy(ctx)
		}
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	identity, migrated, migrationErr := r.migrator.Migrate(ctx, data, configVersion)
	if migrationErr != nil {
		r.logger.WarnContext(ctx, "Migration failed, attempting direct load", "error", migrationErr)
	} else if migrated {
		r.adoptMigrated(ctx, identity, r.configPath)
		return nil
	}

	config := GetDefaultConfig()
	if unmarshalErr := yaml.Unmarshal(data, config); unmarshalErr != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", unmarshalErr)
	}

	r.config = config
	r.logger.DebugContext(ctx, "Configuration loaded",
		"path", r.configPath,
		"version", config.Version,
		"realm", config.Realm)
	return nil
}

func (r *Repository) migrateLegacy(ctx context.Context) error {
	if r.legacyPath == "" {
		return os.ErrNotExist
	}

	data, err := r.fs.ReadFile(r.legacyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to read legacy configuration file: %w", err)
	}

	identity, migrated, err := r.migrator.Migrate(ctx, data, configVersion)
	if err != nil {
		return fmt.Errorf("failed to migrate legacy configuration: %w", err)
	}
	if !migrated {
		return os.ErrNotExist
	}

	r.adoptMigrated(ctx, identity, r.legacyPath)
	return nil
}

func (r *Repository) adoptMigrated(ctx context.Context, identity domain.Identity, sourcePath string) {
	config := GetDefaultConfig()
	config.SetIdentity(identity)
	r.config = config

	// The legacy file may still hold a plaintext password.
	if permErr := r.migrator.FixPermissionsPostMigration(ctx, sourcePath, r.fs); permErr != nil {
		r.logger.WarnContext(ctx, "Failed to fix permissions during migration", "error", permErr)
	}

	if saveErr := r.SaveConfig(ctx); saveErr != nil {
		r.logger.WarnContext(ctx, "Failed to save migrated config", "error", saveErr)
	}
	r.logger.InfoContext(ctx, "Configuration migrated and loaded",
		"source", sourcePath,
		"path", r.configPath,
		"version", configVersion)
}
