// Package schema provides commands for inspecting the type system.
package schema

import (
	"github.com/spf13/cobra"

	"github.com/mattclark/SHARE/internal/cmd/constants"
	"github.com/mattclark/SHARE/internal/cmd/globals"
	"github.com/mattclark/SHARE/internal/cmd/output"
	"github.com/mattclark/SHARE/pkg/errors"
	pkgschema "github.com/mattclark/SHARE/pkg/schema"
)

// AppContext provides the application dependencies the schema commands need.
type AppContext interface {
	Schema() *pkgschema.Schema
}

// NewCommand creates the schema command.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schema",
		GroupID: "management",
		Short:   "Inspect the type system",
		Long: `Inspect the type system that graphs are validated against.

Every node carries a type tag that must resolve to one of these types.
Subtype tags resolve to the owning concrete type, so "preprint" shows the
CreativeWork definition.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Add subcommands
	cmd.AddCommand(NewShowCommand(app))

	return cmd
}

// NewShowCommand creates the schema show subcommand.
func NewShowCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [type]",
		Short: "Show type definitions",
		Long: `Show every concrete type, or the full definition of one type.

With no argument, lists the concrete types with their tables and counts.
With a type or subtype name, shows the owning type's attributes, relations,
and subtype lineage.`,
		Example: `  share schema show                  # List all concrete types
  share schema show agent            # One type in full
  share schema show preprint         # Subtype names resolve to their owner
  share schema show tag -o yaml      # Structured output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, args)
		},
	}
}

// runShow executes the show subcommand.
func runShow(cmd *cobra.Command, app AppContext, args []string) error {
	s := app.Schema()

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return output.FormatSchemaTypes(s.Types, globalFlags)
	}

	typ, ok := s.Concrete(args[0])
	if !ok {
		// Suppress usage display for not found errors
		cmd.SilenceUsage = true
		return &errors.NotFoundError{Resource: "type", ID: args[0]}
	}

	// For table output, show the sectioned detail view
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		printTypeDetails(typ)
		return nil
	}

	// For structured output, return the type definition
	return output.FormatAny(typ, globalFlags)
}
