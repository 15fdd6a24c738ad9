// Package resolve provides the command that matches graph nodes against
// persisted records.
package resolve

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	share "github.com/mattclark/SHARE"
	"github.com/mattclark/SHARE/internal/cmd/alerts"
	"github.com/mattclark/SHARE/internal/cmd/constants"
	"github.com/mattclark/SHARE/internal/cmd/filter"
	"github.com/mattclark/SHARE/internal/cmd/globals"
	"github.com/mattclark/SHARE/internal/cmd/output"
	"github.com/mattclark/SHARE/internal/cmd/table"
	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/identifiers"
	"github.com/mattclark/SHARE/pkg/match"
)

// AppContext defines the interface that the resolve command needs from the app.
// This allows for better testability and decoupling from the full app.
type AppContext interface {
	Share() (share.Client, error)
	ShareWithOptions(opts ...share.Option) (share.Client, error)
	Logger() *zerolog.Logger
}

// Report summarizes one resolution run for structured output.
type Report struct {
	GeneratedAt utc.Time              `json:"generated_at" yaml:"generated_at"`
	Accepted    int                   `json:"accepted" yaml:"accepted"`
	Rewritten   int                   `json:"rewritten" yaml:"rewritten"`
	Removed     []identifiers.Removal `json:"removed,omitempty" yaml:"removed,omitempty"`
	Matched     int                   `json:"matched" yaml:"matched"`
	Unmatched   []string              `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	Matches     []output.MatchEntry   `json:"matches" yaml:"matches"`
}

// NewCommand creates the resolve command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolve [file]",
		GroupID: "core",
		Short:   "Resolve a metadata graph against the database",
		Args:    cobra.MaximumNArgs(1),
		Long: `Resolve normalizes a metadata graph and matches each node against
records already persisted in the database.

The graph is read as JSON from the given file, or from stdin when no
file is given. Work identifiers are canonicalized first; nodes whose
identifiers cannot stand are removed. The remaining nodes then go
through the disambiguation passes in order: exact identifier lookup,
attribute lookup, relation-based lookup, subject lookup, and finally
the fuzzy agent-relation comparison.

A conflict, where one node matches several existing records through a
single relation, stops the run and reports the colliding records.`,
		Example: `  share resolve graph.json                 # Resolve a graph file
  cat graph.json | share resolve           # Resolve from stdin
  share resolve graph.json --source org.x  # Scope subject lookup to a source
  share resolve graph.json -o json         # Full report as JSON
  share resolve graph.json -t person       # Only person matches in the listing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args)
		},
	}

	globals.AddResourceFlags(cmd)
	cmd.Flags().String("source", "",
		"Source ref backing this graph, scopes subject matching")

	return cmd
}

func run(cmd *cobra.Command, app AppContext, args []string) error {
	g, err := readGraph(cmd, args)
	if err != nil {
		return err
	}

	client, owned, err := selectClient(cmd, app)
	if err != nil {
		return err
	}
	if owned {
		defer func() {
			if err := client.Close(); err != nil {
				app.Logger().Error().Err(err).Msg("Failed to close client")
			}
		}()
	}

	result, err := client.Resolve(cmd.Context(), g)
	if err != nil {
		return reportResolveError(cmd, err)
	}

	return writeResult(cmd, g, result)
}

// selectClient returns the shared app client, or a dedicated one when the
// --source flag asks for different scoping. The boolean reports whether the
// caller owns the client and must close it.
func selectClient(cmd *cobra.Command, app AppContext) (share.Client, bool, error) {
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		client, err := app.Share()
		return client, false, err
	}

	client, err := app.ShareWithOptions(share.WithSource(source))
	return client, true, err
}

// readGraph reads and parses the graph document from the file argument or
// stdin.
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

// reportResolveError prints conflict details before handing the error back
// up for exit handling.
func reportResolveError(cmd *cobra.Command, err error) error {
	var ambErr *match.AmbiguityError
	if !stderrors.As(err, &ambErr) {
		return err
	}

	globalFlags, parseErr := globals.Parse(cmd)
	if parseErr != nil {
		return err
	}

	writer := alerts.NewFormatWriter(os.Stderr, output.Format(globalFlags.Output))
	alert := alerts.NewError("resolution conflict").
		WithDetails(fmt.Sprintf("node %s matches %d records via %s",
			ambErr.NodeID, len(ambErr.Candidates), ambErr.Relation))
	_ = writer.WriteAlert(alert)

	// Show the colliding records so the conflict can be fixed upstream
	if isTableFormat(globalFlags.Output) {
		formatter := output.NewFormatter(output.FormatTable)
		data := table.CandidatesToTableData(ambErr.NodeID, ambErr.Candidates)
		_ = formatter.Format(os.Stderr, data)
	}

	cmd.SilenceUsage = true
	return err
}

// writeResult renders the report in the requested output format.
func writeResult(cmd *cobra.Command, g *graph.Graph, result *share.Result) error {
	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	resourceFlags := globals.ParseResources(cmd)

	matchFilter := &filter.MatchFilter{
		Type:   resourceFlags.Type,
		Search: resourceFlags.Search,
		Limit:  resourceFlags.Limit,
	}
	matches := matchFilter.Apply(result.Matches)

	if isTableFormat(globalFlags.Output) {
		if !globalFlags.Quiet {
			writeSummaryAlerts(globalFlags, result)
		}
		return output.FormatMatches(matches, globalFlags)
	}

	report := Report{
		GeneratedAt: utc.Now(),
		Accepted:    result.Report.Accepted,
		Rewritten:   result.Report.Rewritten,
		Removed:     result.Report.Removed,
		Matched:     matches.Len(),
		Unmatched:   unmatchedNodeIDs(g, result.Matches),
		Matches:     output.MatchEntries(matches),
	}
	return output.FormatAny(report, globalFlags)
}

// writeSummaryAlerts prints run statistics to stderr, keeping stdout for the
// match listing.
func writeSummaryAlerts(globalFlags *globals.Flags, result *share.Result) {
	writer := alerts.NewFormatWriter(os.Stderr, output.Format(globalFlags.Output))

	if removed := result.Report.Removed; len(removed) > 0 {
		warning := alerts.NewWarning(fmt.Sprintf("removed %d identifier node(s)", len(removed)))
		for _, r := range removed {
			warning = warning.WithDetails(fmt.Sprintf("%s: %s", r.NodeID, r.Reason))
		}
		_ = writer.WriteAlert(warning)
	}

	summary := fmt.Sprintf("matched %d node(s), accepted %d identifier(s)",
		result.Matches.Len(), result.Report.Accepted)
	_ = writer.WriteAlert(alerts.NewSuccess(summary))
}

// unmatchedNodeIDs lists nodes that survived normalization but matched no
// existing record.
func unmatchedNodeIDs(g *graph.Graph, set *match.Set) []string {
	var unmatched []string
	for _, n := range g.Nodes() {
		if !set.Has(n.ID()) {
			unmatched = append(unmatched, n.ID())
		}
	}
	return unmatched
}

func isTableFormat(format string) bool {
	switch format {
	case constants.FormatTable, constants.FormatWide, "":
		return true
	default:
		return false
	}
}
