// Package app provides the application context and dependency management
// for the share CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	share "github.com/mattclark/SHARE"
	"github.com/mattclark/SHARE/internal/config"
	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/schema"
)

// App represents the share application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the client instance, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *config.Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client share.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	// Initialize logger
	logger := NewLogger(cfg)
	app.logger = &logger

	// Apply any custom options
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
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Schema returns the static type schema. Commands that only inspect the
// schema use this instead of opening a client.
func (a *App) Schema() *schema.Schema {
	return schema.Default()
}

// Share returns the client instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Share() (share.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	// Create client instance with options from config
	c, err := share.New(a.buildShareOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// ShareWithOptions returns a new client with custom options layered over
// the configured defaults. This is useful for commands that need specific
// settings different from the default app instance (e.g., resolve with
// --source). The caller owns the returned client and must close it.
func (a *App) ShareWithOptions(opts ...share.Option) (share.Client, error) {
	all := append(a.buildShareOptions(), opts...)
	c, err := share.New(all...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "with custom options", err)
	}
	return c, nil
}

// Shutdown performs graceful shutdown of the application.
// It closes the client and releases its database resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c != nil {
		if err := c.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close client during shutdown")
			return err
		}
	}

	return nil
}

// buildShareOptions constructs client options from the app configuration.
func (a *App) buildShareOptions() []share.Option {
	var opts []share.Option

	// Add database if configured
	if a.config.DatabaseURL != "" {
		opts = append(opts, share.WithDatabaseURL(a.config.DatabaseURL))
	}

	// Add source scoping if configured
	if a.config.Source != "" {
		opts = append(opts, share.WithSource(a.config.Source))
	}

	// Add matching limits
	if a.config.MaxNameLength > 0 {
		opts = append(opts, share.WithMaxNameLength(a.config.MaxNameLength))
	}
	if a.config.MaxAgentRelations > 0 {
		opts = append(opts, share.WithMaxAgentRelations(a.config.MaxAgentRelations))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		a.config = cfg
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

// WithClient sets a custom client instance (useful for testing).
func WithClient(c share.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
