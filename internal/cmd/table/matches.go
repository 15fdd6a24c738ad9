package table

import (
	"strconv"

	"github.com/mattclark/SHARE/pkg/identifiers"
	"github.com/mattclark/SHARE/pkg/match"
	"github.com/mattclark/SHARE/pkg/store"
)

// MatchesToTableData converts a resolution match set to table format. Nodes
// appear in sorted id order; a node with several candidates gets one row per
// candidate.
func MatchesToTableData(set *match.Set) Data {
	headers := []string{"Node", "Type", "Subtype", "Record ID", "Ref"}

	rows := make([][]string, 0, set.Len())
	for _, nodeID := range set.NodeIDs() {
		for _, c := range set.Matches(nodeID) {
			rows = append(rows, candidateRow(nodeID, c))
		}
	}

	return Data{
		Headers: headers,
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft,
		},
	}
}

// CandidatesToTableData converts conflicting candidates to table format,
// used when a lookup matched more than one existing record.
func CandidatesToTableData(nodeID string, candidates []match.Candidate) Data {
	headers := []string{"Node", "Type", "Subtype", "Record ID", "Ref"}

	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, candidateRow(nodeID, c))
	}

	return Data{
		Headers: headers,
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft,
		},
	}
}

func candidateRow(nodeID string, c match.Candidate) []string {
	subtype := c.Subtype
	if subtype == "" {
		subtype = "-"
	}
	return []string{
		nodeID,
		c.Type,
		subtype,
		strconv.FormatInt(c.ID, 10),
		store.Ref(c),
	}
}

// RemovalsToTableData converts identifier removals to table format.
func RemovalsToTableData(removals []identifiers.Removal) Data {
	headers := []string{"Node", "Type", "URI", "Reason"}

	rows := make([][]string, 0, len(removals))
	for _, r := range removals {
		uri := r.URI
		if uri == "" {
			uri = "-"
		}
		rows = append(rows, []string{r.NodeID, r.Type, uri, r.Reason})
	}

	return Data{
		Headers: headers,
		Rows:    rows,
	}
}
