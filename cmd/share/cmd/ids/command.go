// Package ids provides commands for encoding and decoding public record ids.
package ids

import (
	"github.com/spf13/cobra"

	"github.com/mattclark/SHARE/pkg/schema"
)

// AppContext provides the application dependencies the ids commands need.
type AppContext interface {
	Schema() *schema.Schema
}

// NewCommand creates the ids command.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ids",
		GroupID: "management",
		Short:   "Encode and decode public record ids",
		Long: `Work with the opaque public ids that stand in for database keys.

A public id carries a type name and an obfuscated primary key in the form
TypeName:XXXX-XXXX-XXXX-XXXX. Encoding and decoding are deterministic and
need no database connection.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Add subcommands
	cmd.AddCommand(NewEncodeCommand(app))
	cmd.AddCommand(NewDecodeCommand(app))

	return cmd
}
