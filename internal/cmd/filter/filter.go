package filter

import (
	"strings"

	"github.com/mattclark/SHARE/pkg/match"
	"github.com/mattclark/SHARE/pkg/store"
)

// MatchFilter applies filters to resolution match sets
type MatchFilter struct {
	Type   string // Concrete type or subtype name
	Search string // General search term
	Limit  int    // Maximum number of nodes, 0 for all
}

// Apply filters a match set into a new set. The input set is not modified.
func (f *MatchFilter) Apply(set *match.Set) *match.Set {
	if f == nil || f.isEmpty() {
		return set
	}

	filtered := match.NewSet()
	kept := 0

	for _, nodeID := range set.NodeIDs() {
		if f.Limit > 0 && kept >= f.Limit {
			break
		}
		added := false
		for _, c := range set.Matches(nodeID) {
			if f.matches(nodeID, c) {
				filtered.Add(nodeID, c)
				added = true
			}
		}
		if added {
			kept++
		}
	}

	return filtered
}

func (f *MatchFilter) isEmpty() bool {
	return f.Type == "" &&
		f.Search == "" &&
		f.Limit == 0
}

func (f *MatchFilter) matches(nodeID string, c match.Candidate) bool {
	// Type filter
	if f.Type != "" && !f.matchesType(c) {
		return false
	}

	// Search filter
	if f.Search != "" && !f.matchesSearch(nodeID, c) {
		return false
	}

	return true
}

func (f *MatchFilter) matchesType(c match.Candidate) bool {
	return strings.EqualFold(c.Type, f.Type) ||
		strings.EqualFold(c.Subtype, f.Type)
}

func (f *MatchFilter) matchesSearch(nodeID string, c match.Candidate) bool {
	search := strings.ToLower(f.Search)

	// Search in node id
	if strings.Contains(strings.ToLower(nodeID), search) {
		return true
	}

	// Search in type and subtype
	if strings.Contains(strings.ToLower(c.Type), search) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Subtype), search) {
		return true
	}

	// Search in the obfuscated ref
	return strings.Contains(strings.ToLower(store.Ref(c)), search)
}
