package migrations

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"adpasswd/internal/domain"
)

// CurrentVersion is the configuration format written by this release.
const CurrentVersion = "1"

// legacyVersion labels the JSON format, which carries no version field.
const legacyVersion = "0"

// ConfigMigrator handles configuration migrations between versions.
type ConfigMigrator interface {
	Migrate(ctx context.Context, data []byte, currentVersion string) (domain.Identity, bool, error)
	FixPermissionsPostMigration(ctx context.Context, configPath string, fs domain.FileSystemAdapter) error
}

// Migrator implements configuration migration logic.
type Migrator struct {
	logger *slog.Logger
}

// NewMigrator creates a new configuration migrator.
func NewMigrator(logger *slog.Logger) *Migrator {
	return &Migrator{
		logger: logger,
	}
}

// Migrate attempts to migrate configuration data to the current version.
// Returns: identity, wasMigrated, error.
func (m *Migrator) Migrate(
	ctx context.Context,
	data []byte,
	currentVersion string,
) (domain.Identity, bool, error) {
	version, err := m.detectVersion(data)
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("failed to detect config version: %w", err)
	}

	m.logger.DebugContext(ctx, "Detected configuration version", "version", version, "current", currentVersion)

	switch version {
	case currentVersion, "":
		return domain.Identity{}, false, nil
	case legacyVersion:
		return m.migrateFromLegacy(ctx, data)
	default:
		return domain.Identity{}, false, fmt.Errorf("unsupported configuration version: %s", version)
	}
}

// detectVersion attempts to detect the configuration version. A JSON object
// is the legacy format; YAML files carry an explicit version.
func (m *Migrator) detectVersion(data []byte) (string, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return legacyVersion, nil
	}

	var versionCheck struct {
		Version string `yaml:"version"`
	}

	if err := yaml.Unmarshal(data, &versionCheck); err != nil {
		return "", err
	}

	return versionCheck.Version, nil
}

func (m *Migrator) migrateFromLegacy(ctx context.Context, data []byte) (domain.Identity, bool, error) {
	identity, hadPassword, err := migrateFromLegacy(data)
	if err != nil {
		return domain.Identity{}, false, fmt.Errorf("failed to migrate legacy configuration: %w", err)
	}

	if hadPassword {
		m.logger.WarnContext(ctx, "Legacy configuration stores a plaintext password that is no longer used; "+
			"supply it through ADPASSWD_PASSWORD or the prompt and delete the legacy file")
	}

	m.logger.InfoContext(ctx, "Successfully migrated legacy configuration",
		"realm", identity.Realm,
		"username", identity.Username)
	return identity, true, nil
}

// FixPermissionsPostMigration restricts the migrated file to its owner. Files
// written by earlier releases were created with the default umask.
func (m *Migrator) FixPermissionsPostMigration(
	ctx context.Context,
	configPath string,
	fs domain.FileSystemAdapter,
) error {
	const (
		dirPermissions  = 0o700 // Owner-only access for security
		filePermissions = 0o600 // Read/write owner only
	)

	if err := fs.Chmod(configPath, filePermissions); err != nil {
		m.logger.WarnContext(ctx, "Failed to fix config file permissions",
			"path", configPath, "error", err)
		return fmt.Errorf("failed to fix config file permissions: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := fs.Chmod(configDir, dirPermissions); err != nil {
		m.logger.WarnContext(ctx, "Failed to fix config directory permissions",
			"path", configDir, "error", err)
		return fmt.Errorf("failed to fix config directory permissions: %w", err)
	}

	m.logger.InfoContext(ctx, "Fixed file and directory permissions post-migration",
		"config_file", configPath, "config_dir", configDir)
	return nil
}
