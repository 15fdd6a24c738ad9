package ids

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattclark/SHARE/internal/cmd/globals"
	"github.com/mattclark/SHARE/internal/cmd/output"
	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/obfuscate"
	"github.com/mattclark/SHARE/pkg/schema"
)

// DecodedRef is the decode result for structured output.
type DecodedRef struct {
	Ref      string `json:"ref" yaml:"ref"`
	Type     string `json:"type" yaml:"type"`
	Subtype  string `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	RecordID int64  `json:"record_id" yaml:"record_id"`
	Table    string `json:"table" yaml:"table"`
}

// NewDecodeCommand creates the ids decode subcommand.
func NewDecodeCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <ref>",
		Short: "Decode a public id back into its type and record id",
		Long: `Decode a public id into the type name and record id it carries.

Decoding only inverts the encoding; it does not check that the record
exists. Use resolve to fetch records.`,
		Example: `  share ids decode person:9E37-79B9-7F1E-7C15
  share ids decode preprint:9E37-79B9-7F44-7C15 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, app, args[0])
		},
	}
}

// runDecode executes the decode subcommand.
func runDecode(cmd *cobra.Command, app AppContext, ref string) error {
	result, err := decodeRef(app.Schema(), ref)
	if err != nil {
		// Suppress usage display for semantic failures
		cmd.SilenceUsage = true
		return err
	}

	globalFlags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	return output.FormatAny(result, globalFlags)
}

// decodeRef inverts the id encoding and maps the embedded type name onto
// its concrete type.
func decodeRef(s *schema.Schema, ref string) (DecodedRef, error) {
	typeName, pk, err := obfuscate.Decode(ref)
	if err != nil {
		return DecodedRef{}, err
	}
	typ, ok := s.Concrete(typeName)
	if !ok {
		return DecodedRef{}, &errors.RefError{Ref: ref, Message: "unknown type " + typeName}
	}

	result := DecodedRef{
		Ref:      ref,
		Type:     typ.Name,
		RecordID: pk,
		Table:    typ.Table,
	}
	if s.IsSubtype(typeName) {
		result.Subtype = strings.ToLower(typeName)
	}
	return result, nil
}
