package app

import (
	"github.com/spf13/cobra"

	"github.com/mattclark/SHARE/cmd/share/cmd/ids"
	"github.com/mattclark/SHARE/cmd/share/cmd/names"
	"github.com/mattclark/SHARE/cmd/share/cmd/normalize"
	"github.com/mattclark/SHARE/cmd/share/cmd/resolve"
	schemacmd "github.com/mattclark/SHARE/cmd/share/cmd/schema"
)

// CreateResolveCommand creates the resolve command with app dependencies.
func (a *App) CreateResolveCommand() *cobra.Command {
	return resolve.NewCommand(a)
}

// CreateNormalizeCommand creates the normalize command with app dependencies.
func (a *App) CreateNormalizeCommand() *cobra.Command {
	return normalize.NewCommand(a)
}

// CreateSchemaCommand creates the schema command with app dependencies.
func (a *App) CreateSchemaCommand() *cobra.Command {
	return schemacmd.NewCommand(a)
}

// CreateIDsCommand creates the ids command with app dependencies.
func (a *App) CreateIDsCommand() *cobra.Command {
	return ids.NewCommand(a)
}

// CreateNamesCommand creates the names command with app dependencies.
func (a *App) CreateNamesCommand() *cobra.Command {
	return names.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("share %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
