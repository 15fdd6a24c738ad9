// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"github.com/rs/zerolog"

	share "github.com/mattclark/SHARE"
	"github.com/mattclark/SHARE/pkg/schema"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/share/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Share returns the default client instance, creating it lazily if needed.
	// This is thread-safe and ensures only one instance is created. The
	// database connection itself is opened on first use, so commands that
	// never touch the database can still call this.
	Share() (share.Client, error)

	// ShareWithOptions creates a new client with custom options layered over
	// the configured defaults. Use this when a command needs specific
	// configuration (e.g., resolve with --source).
	ShareWithOptions(...share.Option) (share.Client, error)

	// Schema returns the type system graphs are validated against.
	// Commands that only inspect the schema should use this instead of
	// building a client.
	Schema() *schema.Schema

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
