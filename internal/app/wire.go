package app

import (
	"context"
	"os"

	"adpasswd/internal/adapters/dns"
	"adpasswd/internal/adapters/exec"
	"adpasswd/internal/adapters/filesystem"
	"adpasswd/internal/adapters/terminal"
	"adpasswd/internal/logging"
	"adpasswd/internal/services/config"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config) (*App, error) {
	logger := logging.NewLogger(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	})

	fs := filesystem.New()

	// Password reader honours ADPASSWD_PASSWORD before prompting.
	passwordReader := terminal.NewAdapter(os.Stdin, os.Stderr)

	configProvider := config.NewProvider(fs)
	configPath := cfg.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = configProvider.GetConfigPath()
		if err != nil {
			return nil, err
		}
	}
	legacyPath, err := configProvider.GetLegacyConfigPath()
	if err != nil {
		return nil, err
	}
	configRepo, err := config.NewRepository(fs, configPath, legacyPath, logger)
	if err != nil {
		return nil, err
	}

	// External tools and DNS are created once and shared by every evaluation.
	services := NewServiceFactory(exec.NewRunner(logger), fs, dns.NewResolver(logger), logger)

	logger.DebugContext(ctx, "Initializing adpasswd with configuration",
		"logLevel", string(cfg.LogLevel),
		"logFormat", cfg.LogFormat,
		"verbose", cfg.Verbose,
		"configPath", configPath)

	return &App{
		ConfigRepo:     configRepo,
		ConfigProvider: configProvider,
		ConfigPath:     configPath,
		Services:       services,
		PasswordReader: passwordReader,
		FileSystem:     fs,
		Logger:         logger,
		Config:         cfg,
	}, nil
}
