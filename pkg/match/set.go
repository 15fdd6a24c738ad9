package match

import (
	"sort"
)

// Set is the node-to-candidates mapping built by the passes: for each node
// id, the distinct persisted records it may describe. A Set belongs to one
// resolution run over one graph; it is created fresh, threaded explicitly
// through every pass, and is the run's sole output. Not safe for concurrent
// use.
type Set struct {
	matches map[string]map[candidateKey]Candidate
}

// NewSet returns an empty match set.
func NewSet() *Set {
	return &Set{matches: make(map[string]map[candidateKey]Candidate)}
}

// Add records a candidate for a node. Adding the same record twice is a
// no-op; distinct records accumulate.
func (s *Set) Add(nodeID string, c Candidate) {
	byKey, ok := s.matches[nodeID]
	if !ok {
		byKey = make(map[candidateKey]Candidate)
		s.matches[nodeID] = byKey
	}
	byKey[c.key()] = c
}

// AddAll records several candidates for a node.
func (s *Set) AddAll(nodeID string, cs []Candidate) {
	for _, c := range cs {
		s.Add(nodeID, c)
	}
}

// Has reports whether the node has at least one match.
func (s *Set) Has(nodeID string) bool {
	return len(s.matches[nodeID]) > 0
}

// Matches returns the node's candidates, ordered by type then id so results
// are deterministic.
func (s *Set) Matches(nodeID string) []Candidate {
	byKey := s.matches[nodeID]
	if len(byKey) == 0 {
		return nil
	}
	out := make([]Candidate, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// One returns the node's single match, when it has exactly one.
func (s *Set) One(nodeID string) (Candidate, bool) {
	byKey := s.matches[nodeID]
	if len(byKey) != 1 {
		return Candidate{}, false
	}
	for _, c := range byKey {
		return c, true
	}
	return Candidate{}, false
}

// Len returns the number of nodes with at least one match.
func (s *Set) Len() int {
	return len(s.matches)
}

// NodeIDs returns the ids of all matched nodes, sorted.
func (s *Set) NodeIDs() []string {
	ids := make([]string, 0, len(s.matches))
	for id := range s.matches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
