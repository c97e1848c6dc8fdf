package app

import (
	"context"
	"io"
	"log/slog"

	"adpasswd/internal/domain"
	"adpasswd/internal/logging"
	"adpasswd/internal/services/config"
)

// App contains all application dependencies.
type App struct {
	// Core configuration dependencies (always needed)
	ConfigRepo     *config.Repository
	ConfigProvider domain.ConfigProvider
	ConfigPath     string

	// Factory for the evaluation services, built from the effective configuration
	Services *ServiceFactory

	// File operations (needed by multiple commands)
	FileSystem domain.FileSystemAdapter

	// I/O dependencies
	PasswordReader domain.PasswordReader

	// Logging
	Logger *slog.Logger

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	LogLevel   logging.LogLevel
	LogFormat  string
	LogOutput  io.Writer
	Verbose    bool
	ConfigPath string
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithLogLevel sets the logging level.
func WithLogLevel(level logging.LogLevel) Option {
	return func(cfg *Config) {
		cfg.LogLevel = level
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			cfg.LogLevel = logging.LevelDebug
		}
	}
}

// WithLogFormat selects the text or json log handler.
func WithLogFormat(format string) Option {
	return func(cfg *Config) {
		if format != "" {
			cfg.LogFormat = format
		}
	}
}

// WithLogOutput redirects log output, stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(cfg *Config) {
		cfg.LogOutput = w
	}
}

// WithConfigPath overrides the default config file location.
func WithConfigPath(path string) Option {
	return func(cfg *Config) {
		cfg.ConfigPath = path
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	defaults := logging.DefaultConfig()
	cfg := &Config{
		LogLevel:  defaults.Level,
		LogFormat: defaults.Format,
		LogOutput: defaults.Output,
		Verbose:   false,
	}

	// Apply options.
	for _, opt := range opts {
		opt(cfg)
	}

	return NewAppWithConfig(ctx, cfg)
}
