package match

import (
	"context"
	"strings"

	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/logging"
	"github.com/mattclark/SHARE/pkg/schema"
)

// Matcher runs the full matching sequence over a graph. The order is fixed:
// identifiers match before the records that own them, works and agents match
// through their identifiers before the relations that join them, and the
// fuzzy relation pass runs last over whatever exact matching left behind.
type Matcher struct {
	strategy *Strategy
}

// NewMatcher builds a Matcher over the given store and resolver.
func NewMatcher(store Store, resolver RefResolver, opts ...Option) *Matcher {
	return &Matcher{strategy: NewStrategy(store, resolver, opts...)}
}

// Resolve matches every node in the graph it can and returns the accumulated
// match set. Missing inverse edges are filled in from the schema first, so a
// payload only carrying forward relations still matches containers through
// their members; nodes and attributes are otherwise untouched.
func (m *Matcher) Resolve(ctx context.Context, g *graph.Graph) (*Set, error) {
	s := m.strategy
	set := NewSet()

	m.completeInverses(g)

	if err := s.InitialPass(ctx, set, g.Nodes()); err != nil {
		return nil, err
	}

	if err := s.MatchByAttrs(ctx, set, g.TypedNodes("workidentifier"), "WorkIdentifier", []string{"uri"}, nil); err != nil {
		return nil, err
	}
	if err := s.MatchByAttrs(ctx, set, g.TypedNodes("agentidentifier"), "AgentIdentifier", []string{"uri"}, nil); err != nil {
		return nil, err
	}

	if err := s.MatchByOneToMany(ctx, set, m.nodesOf(g, "CreativeWork"), "CreativeWork", "identifiers"); err != nil {
		return nil, err
	}
	if err := s.MatchByOneToMany(ctx, set, m.nodesOf(g, "Agent"), "Agent", "identifiers"); err != nil {
		return nil, err
	}

	if err := s.MatchSubjects(ctx, set, g.TypedNodes("subject")); err != nil {
		return nil, err
	}

	if err := s.MatchByAttrs(ctx, set, g.TypedNodes("tag"), "Tag", []string{"name"}, nil); err != nil {
		return nil, err
	}

	if err := s.MatchByManyToOne(ctx, set, g.TypedNodes("throughtags"), "ThroughTags", []string{"tag", "creative_work"}, nil); err != nil {
		return nil, err
	}
	if err := s.MatchByManyToOne(ctx, set, g.TypedNodes("throughsubjects"), "ThroughSubjects", []string{"subject", "creative_work"}, nil); err != nil {
		return nil, err
	}

	if err := m.matchTypedRelations(ctx, set, g, "AgentWorkRelation", []string{"agent", "creative_work"}); err != nil {
		return nil, err
	}
	if err := m.matchTypedRelations(ctx, set, g, "AgentRelation", []string{"subject", "related"}); err != nil {
		return nil, err
	}
	if err := m.matchTypedRelations(ctx, set, g, "WorkRelation", []string{"subject", "related"}); err != nil {
		return nil, err
	}

	if err := s.MatchAgentWorkRelations(ctx, set, m.nodesOf(g, "AgentWorkRelation")); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Int("nodes", g.Len()).
		Int("matched", set.Len()).
		Msg("matching complete")
	return set, nil
}

// completeInverses mirrors every to-one edge onto its target's inverse
// relation. Payloads usually carry only the owning side of a foreign key;
// the container passes walk the other direction.
func (m *Matcher) completeInverses(g *graph.Graph) {
	for _, node := range g.Nodes() {
		typ, ok := m.strategy.schema.Concrete(node.Type())
		if !ok {
			continue
		}
		for _, name := range node.RelationNames() {
			target, ok := node.Relation(name)
			if !ok {
				continue
			}
			rel, ok := typ.Relation(name)
			if !ok || rel.Kind != schema.ManyToOne || rel.Inverse == "" {
				continue
			}
			existing := target.Related(rel.Inverse)
			if containsNode(existing, node) {
				continue
			}
			target.SetRelated(rel.Inverse, append(existing, node)...)
		}
	}
}

func containsNode(nodes []*graph.Node, n *graph.Node) bool {
	for _, other := range nodes {
		if other == n {
			return true
		}
	}
	return false
}

// nodesOf returns the graph nodes of a concrete type, including every
// subtype tag.
func (m *Matcher) nodesOf(g *graph.Graph, typeName string) []*graph.Node {
	typ, ok := m.strategy.schema.Lookup(typeName)
	if !ok {
		return nil
	}
	if !typ.HasSubtypes() {
		return g.TypedNodes(strings.ToLower(typ.Name))
	}
	return g.TypedNodes(typ.SubtypeNames()...)
}

// matchTypedRelations runs the to-one pass for a subtyped relation type, one
// batch per node type tag so each batch can be constrained to the tags its
// nodes may legally match.
func (m *Matcher) matchTypedRelations(ctx context.Context, set *Set, g *graph.Graph, typeName string, relationNames []string) error {
	groups, order := groupByType(m.nodesOf(g, typeName))
	for _, tag := range order {
		allowed, ok := m.strategy.schema.AllowedSubtypeTags(tag)
		if !ok {
			continue
		}
		if err := m.strategy.MatchByManyToOne(ctx, set, groups[tag], typeName, relationNames, allowed); err != nil {
			return err
		}
	}
	return nil
}

func groupByType(nodes []*graph.Node) (map[string][]*graph.Node, []string) {
	groups := make(map[string][]*graph.Node)
	var order []string
	for _, n := range nodes {
		if _, ok := groups[n.Type()]; !ok {
			order = append(order, n.Type())
		}
		groups[n.Type()] = append(groups[n.Type()], n)
	}
	return groups, order
}
