// Package normalize provides the command that canonicalizes work
// identifiers in a metadata graph without touching a database.
package normalize

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	share "github.com/mattclark/SHARE"
	"github.com/mattclark/SHARE/internal/cmd/alerts"
	"github.com/mattclark/SHARE/internal/cmd/globals"
	"github.com/mattclark/SHARE/internal/cmd/output"
	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/identifiers"
)

// AppContext defines the interface that the normalize command needs from the app.
type AppContext interface {
	Share() (share.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the normalize command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "normalize [file]",
		GroupID: "core",
		Short:   "Canonicalize identifiers in a metadata graph",
		Args:    cobra.MaximumNArgs(1),
		Long: `Normalize canonicalizes the identifier nodes of a metadata graph and
writes the rewritten graph to stdout.

The graph is read as JSON from the given file, or from stdin when no
file is given. Work identifier URIs are parsed, canonicalized, and
rewritten in place; identifiers that cannot stand (unparseable URIs,
disallowed schemes or authorities) are removed together with their
nodes. No database is needed.

The removal report goes to stderr, so the command can sit in a shell
pipeline.`,
		Example: `  share normalize graph.json > clean.json   # Rewrite a graph file
  cat graph.json | share normalize          # Normalize from stdin
  share normalize graph.json -q             # Suppress the removal report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args)
		},
	}

	return cmd
}

func run(cmd *cobra.Command, app AppContext, args []string) error {
	g, err := readGraph(cmd, args)
	if err != nil {
		return err
	}

	client, err := app.Share()
	if err != nil {
		return err
	}

	report := client.Normalize(cmd.Context(), g)

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}

	if !globalFlags.Quiet {
		writeReportAlerts(globalFlags, report)
	}

	return writeGraph(cmd.OutOrStdout(), g)
}

func readGraph(cmd *cobra.Command, args []string) (*graph.Graph, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, errors.WrapIO("read", args[0], err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.WrapIO("read", "stdin", err)
		}
	}
	return graph.Parse(data)
}

// writeGraph writes the rewritten graph document to stdout.
func writeGraph(w io.Writer, g *graph.Graph) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(g); err != nil {
		return errors.WrapParse("json", "graph document", err)
	}
	return nil
}

func writeReportAlerts(globalFlags *globals.Flags, report identifiers.Report) {
	writer := alerts.NewFormatWriter(os.Stderr, output.Format(globalFlags.Output))

	if len(report.Removed) > 0 {
		warning := alerts.NewWarning(fmt.Sprintf("removed %d identifier node(s)", len(report.Removed)))
		for _, r := range report.Removed {
			warning = warning.WithDetails(fmt.Sprintf("%s: %s", r.NodeID, r.Reason))
		}
		_ = writer.WriteAlert(warning)
	}

	summary := fmt.Sprintf("accepted %d identifier(s), rewrote %d", report.Accepted, report.Rewritten)
	_ = writer.WriteAlert(alerts.NewSuccess(summary))
}
