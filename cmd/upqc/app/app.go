// Package app provides the application context and dependency management
// for the upqc CLI. It centralizes configuration, logging and the lifetime
// of the host project snapshot the commands reconcile against.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	internalproject "github.com/agentstation/upscalingqc/internal/project"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/project"
)

// App represents the upqc application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Host project (lazy-initialized, singleton)
	mu   sync.Mutex
	host project.Host
	open func(ctx context.Context, path string) (project.Host, error)
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		open:    internalproject.Open,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputDir returns the configured export destination.
func (a *App) OutputDir() string {
	return a.config.OutputDir
}

// Host returns the host project, opening the configured snapshot on first use.
func (a *App) Host(ctx context.Context) (project.Host, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.host != nil {
		return a.host, nil
	}

	if a.config.Project == "" {
		return nil, errors.NewConfigError("project",
			"no project snapshot given: use --project or set UPQC_PROJECT", nil)
	}

	host, err := a.open(ctx, a.config.Project)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("project", a.config.Project).Msg("opened project snapshot")

	a.host = host
	return host, nil
}

// Shutdown releases the host project if it was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	host := a.host
	a.host = nil
	a.mu.Unlock()

	if host == nil {
		return nil
	}
	if err := host.Close(); err != nil {
		return errors.WrapIO("close", a.config.Project, err)
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithHost sets a custom host project (useful for testing).
func WithHost(host project.Host) Option {
	return func(a *App) error {
		a.host = host
		return nil
	}
}
