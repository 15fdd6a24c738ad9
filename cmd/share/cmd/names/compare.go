package names

import (
	"github.com/spf13/cobra"

	"github.com/mattclark/SHARE/internal/cmd/globals"
	"github.com/mattclark/SHARE/internal/cmd/output"
	pkgnames "github.com/mattclark/SHARE/pkg/names"
)

// Comparison reports the agreement levels two names reach, from strictest
// to loosest. Matching prefers candidates that agree at stricter levels.
type Comparison struct {
	A           string `json:"a" yaml:"a"`
	B           string `json:"b" yaml:"b"`
	SameFull    bool   `json:"same_full" yaml:"same_full"`
	SamePair    bool   `json:"same_pair" yaml:"same_pair"`
	SameInitial bool   `json:"same_initial" yaml:"same_initial"`
}

// NewCompareCommand creates the names compare subcommand.
func NewCompareCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <name> <name>",
		Short: "Compare two names at each agreement level",
		Long: `Compare two raw names the way agent matching does.

Three agreement levels are checked, strictest first: the canonical full
form, the (given, surname) pair, and the (initial, surname) pair. "J. Doe"
and "Jane Doe" agree only at the initial level.`,
		Example: `  share names compare "Marie Curie" "Curie, Marie"
  share names compare "J. Doe" "Jane Doe"
  share names compare "A. Lovelace" "Ada King" -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, app, args[0], args[1])
		},
	}
}

// runCompare executes the compare subcommand.
func runCompare(cmd *cobra.Command, app AppContext, rawA, rawB string) error {
	result := compareNames(rawA, rawB)

	app.Logger().Debug().
		Str("a", result.A).
		Str("b", result.B).
		Bool("same_full", result.SameFull).
		Msg("compared names")

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	return output.FormatAny(result, globalFlags)
}

// compareNames parses both names and checks each agreement level.
func compareNames(rawA, rawB string) Comparison {
	a := pkgnames.Parse(rawA)
	b := pkgnames.Parse(rawB)

	return Comparison{
		A:           a.Full,
		B:           b.Full,
		SameFull:    a.Key() == b.Key(),
		SamePair:    a.PairKey() == b.PairKey(),
		SameInitial: a.InitialKey() == b.InitialKey(),
	}
}
