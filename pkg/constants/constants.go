// Package constants provides shared constants used throughout the SHARE codebase.
// This includes matching limits, timeouts, file permissions, and other values
// that should be consistent across the application.
package constants

import "time"

// Matching limit constants bound the disambiguation passes
const (
	// MaxNameLength is the longest name considered by the fuzzy relation
	// matcher. Names over this length are treated as unparseable and
	// excluded from comparison on both sides.
	MaxNameLength = 200

	// MaxAgentRelations is the default ceiling on existing agent relations
	// per work. Works with more relations are skipped by the fuzzy pass.
	MaxAgentRelations = 300

	// MaxLookupRows is the largest number of node rows batched into a
	// single lookup query.
	MaxLookupRows = 10000
)

// Identifier policy defaults for work identifiers
var (
	// DisallowedAuthorities are registry authorities that must not stand in
	// for a canonical work URI.
	DisallowedAuthorities = []string{"issn", "orcid.org"}

	// DisallowedSchemes are URI schemes rejected for work identifiers.
	DisallowedSchemes = []string{"mailto"}
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// DatabaseConnectTimeout is the timeout for establishing the store pool
	DatabaseConnectTimeout = 15 * time.Second

	// ResolveTimeout is the default deadline for one resolution run
	ResolveTimeout = 5 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like credentials (rw-------)
	SecureFilePermissions = 0600
)
