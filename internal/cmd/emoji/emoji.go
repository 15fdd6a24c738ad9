// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, alerts, and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: completed resolutions, accepted identifiers, passing checks.
	Success = "✓"

	// Error represents failures or invalid input.
	// Used for: failed operations, rejected identifiers, lookup conflicts.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: removed identifier nodes, skipped passes.
	Warning = "!"

	// Info represents informational messages.
	// Used for: general information, tips, context.
	Info = "i"

	// Unknown represents unknown or indeterminate states.
	// Used for: unrecognized status, undefined behavior.
	Unknown = "?"
)
