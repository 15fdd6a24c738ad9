// Package names provides commands for inspecting how raw person names parse
// and compare.
package names

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mattclark/SHARE/internal/cmd/globals"
	"github.com/mattclark/SHARE/internal/cmd/output"
	"github.com/mattclark/SHARE/pkg/errors"
	pkgnames "github.com/mattclark/SHARE/pkg/names"
)

// AppContext provides the application dependencies the names commands need.
type AppContext interface {
	Logger() *zerolog.Logger
}

// ParsedName is the parse result for structured output.
type ParsedName struct {
	Raw   string `json:"raw" yaml:"raw"`
	First string `json:"first,omitempty" yaml:"first,omitempty"`
	Last  string `json:"last,omitempty" yaml:"last,omitempty"`
	Full  string `json:"full" yaml:"full"`
}

// NewCommand creates the names command.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "names",
		GroupID: "management",
		Short:   "Inspect name parsing and comparison",
		Long: `Inspect how raw person names decompose into comparable components.

Agent matching compares names by component equality, never by string
distance. These commands show the decomposition and the agreement levels
two names would reach, which is useful when a match did or did not happen
and the reason is not obvious.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Add subcommands
	cmd.AddCommand(NewParseCommand(app))
	cmd.AddCommand(NewCompareCommand(app))

	return cmd
}

// NewParseCommand creates the names parse subcommand.
func NewParseCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <name>...",
		Short: "Parse a raw name into its components",
		Long: `Parse a raw name into given name, surname, and canonical full form.

Comma forms reorder: "Curie, Marie" and "Marie Curie" parse identically.
Multiple arguments are joined with spaces, so quoting is only needed to
keep a comma away from the shell.`,
		Example: `  share names parse "Curie, Marie"
  share names parse Jean-Luc Picard
  share names parse "J. Doe" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, app, strings.Join(args, " "))
		},
	}
}

// runParse executes the parse subcommand.
func runParse(cmd *cobra.Command, app AppContext, raw string) error {
	result, err := parseName(raw)
	if err != nil {
		// Suppress usage display for semantic failures
		cmd.SilenceUsage = true
		return err
	}

	app.Logger().Debug().
		Str("raw", raw).
		Str("first", result.First).
		Str("last", result.Last).
		Msg("parsed name")

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	return output.FormatAny(result, globalFlags)
}

// parseName decomposes a raw name, rejecting input with no components.
func parseName(raw string) (ParsedName, error) {
	parsed := pkgnames.Parse(raw)
	if parsed.Empty() {
		return ParsedName{}, &errors.ValidationError{
			Field:   "name",
			Value:   raw,
			Message: "no name components found",
		}
	}
	return ParsedName{
		Raw:   raw,
		First: parsed.First,
		Last:  parsed.Last,
		Full:  parsed.Full,
	}, nil
}
