package match

import (
	"github.com/mattclark/SHARE/pkg/names"
)

// RelationView is the comparable projection of an agent-work relation, built
// the same way for incoming nodes and persisted rows.
type RelationView struct {
	CitedAs    names.ParsedName
	AgentName  names.ParsedName
	OrderCited *int
	Subtype    string
}

// SortKey ranks one persisted relation against one incoming relation node.
// Earlier positions dominate later ones: cited-as name agreement (full,
// first/last, initial/last), then agent name agreement in the same three
// grades, then citation order, then relation subtype.
type SortKey [8]bool

// Valid reports whether the key is good enough to act on at all. Only
// cited-as agreement qualifies; the remaining positions are tiebreakers.
func (k SortKey) Valid() bool {
	return k[0] || k[1] || k[2]
}

// Beats reports whether k outranks o, comparing positions in order.
func (k SortKey) Beats(o SortKey) bool {
	for i := range k {
		if k[i] != o[i] {
			return k[i]
		}
	}
	return false
}

// CompareRelations scores a persisted relation against an incoming node.
func CompareRelations(node, existing RelationView) SortKey {
	var k SortKey
	nameAgreement(&k, 0, node.CitedAs, existing.CitedAs)
	nameAgreement(&k, 3, node.AgentName, existing.AgentName)
	k[6] = orderEqual(node.OrderCited, existing.OrderCited)
	k[7] = node.Subtype == existing.Subtype
	return k
}

func nameAgreement(k *SortKey, at int, a, b names.ParsedName) {
	k[at] = a.Key() == b.Key()
	k[at+1] = a.PairKey() == b.PairKey()
	k[at+2] = a.InitialKey() == b.InitialKey()
}

func orderEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
