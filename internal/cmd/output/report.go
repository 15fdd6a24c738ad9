package output

import (
	"os"

	"github.com/mattclark/SHARE/internal/cmd/constants"
	"github.com/mattclark/SHARE/internal/cmd/globals"
	"github.com/mattclark/SHARE/internal/cmd/table"
	"github.com/mattclark/SHARE/pkg/identifiers"
	"github.com/mattclark/SHARE/pkg/match"
	"github.com/mattclark/SHARE/pkg/schema"
	"github.com/mattclark/SHARE/pkg/store"
)

// MatchEntry is one node-to-record match in serialized form.
type MatchEntry struct {
	NodeID   string `json:"node_id" yaml:"node_id"`
	Type     string `json:"type" yaml:"type"`
	Subtype  string `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	RecordID int64  `json:"record_id" yaml:"record_id"`
	Ref      string `json:"ref" yaml:"ref"`
}

// MatchEntries flattens a match set into serialized entries, ordered by node
// id then candidate.
func MatchEntries(set *match.Set) []MatchEntry {
	entries := make([]MatchEntry, 0, set.Len())
	for _, nodeID := range set.NodeIDs() {
		for _, c := range set.Matches(nodeID) {
			entries = append(entries, MatchEntry{
				NodeID:   nodeID,
				Type:     c.Type,
				Subtype:  c.Subtype,
				RecordID: c.ID,
				Ref:      store.Ref(c),
			})
		}
	}
	return entries
}

// FormatMatches handles the common pattern of formatting a match set for
// output. This encapsulates the switch logic for different output formats.
func FormatMatches(set *match.Set, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.MatchesToTableData(set)
	default:
		outputData = MatchEntries(set)
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatRemovals handles the common pattern of formatting identifier
// removals for output.
func FormatRemovals(removals []identifiers.Removal, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.RemovalsToTableData(removals)
	default:
		outputData = removals
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatSchemaTypes handles the common pattern of formatting the concrete
// type listing for output.
func FormatSchemaTypes(types []*schema.Type, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))

	// Transform to output format
	var outputData any
	switch globalFlags.Output {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.SchemaTypesToTableData(types)
	default:
		outputData = types
	}

	return formatter.Format(os.Stdout, outputData)
}

// FormatAny handles the common pattern of formatting any data type for output.
// This is useful for commands with custom data structures.
func FormatAny(data any, globalFlags *globals.Flags) error {
	formatter := NewFormatter(Format(globalFlags.Output))
	return formatter.Format(os.Stdout, data)
}
