package match

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/mattclark/SHARE/pkg/constants"
	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/logging"
	"github.com/mattclark/SHARE/pkg/names"
	"github.com/mattclark/SHARE/pkg/schema"
)

// Strategy runs the individual matching passes against a Store, accumulating
// results in a Set. Passes are read-only: they never modify the graph beyond
// what the Set records.
type Strategy struct {
	store    Store
	resolver RefResolver
	schema   *schema.Schema

	source            string
	maxNameLength     int
	maxAgentRelations int
	maxLookupRows     int
}

// Option adjusts a Strategy.
type Option func(*Strategy)

// WithSource scopes subject matching to the named source's custom taxonomy.
// Without it, non-central subjects are left unmatched.
func WithSource(name string) Option {
	return func(s *Strategy) { s.source = name }
}

// WithMaxNameLength overrides the name length ceiling of the fuzzy relation
// pass.
func WithMaxNameLength(n int) Option {
	return func(s *Strategy) { s.maxNameLength = n }
}

// WithMaxAgentRelations overrides the per-work relation count ceiling of the
// fuzzy relation pass.
func WithMaxAgentRelations(n int) Option {
	return func(s *Strategy) { s.maxAgentRelations = n }
}

// WithSchema substitutes the schema the passes consult. Mostly for tests.
func WithSchema(sc *schema.Schema) Option {
	return func(s *Strategy) { s.schema = sc }
}

// NewStrategy builds a Strategy over the given store and resolver.
func NewStrategy(store Store, resolver RefResolver, opts ...Option) *Strategy {
	s := &Strategy{
		store:             store,
		resolver:          resolver,
		schema:            schema.Default(),
		maxNameLength:     constants.MaxNameLength,
		maxAgentRelations: constants.MaxAgentRelations,
		maxLookupRows:     constants.MaxLookupRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitialPass resolves nodes that arrived carrying a public id instead of a
// blank id. Malformed ids and ids naming no record are skipped, not failed:
// the graph may legitimately reference records this store has never seen.
func (s *Strategy) InitialPass(ctx context.Context, set *Set, nodes []*graph.Node) error {
	log := logging.Ctx(ctx)
	matched := 0
	for _, node := range nodes {
		if graph.IsBlankID(node.ID()) {
			continue
		}
		c, err := s.resolver.Resolve(ctx, node.ID())
		if err != nil {
			if errors.IsInvalidRef(err) || errors.IsNotFound(err) {
				continue
			}
			return err
		}
		set.Add(node.ID(), c)
		matched++
	}
	log.Debug().Int("matched", matched).Msg("initial pass complete")
	return nil
}

// MatchByAttrs matches nodes of one concrete type on equality of the named
// attributes, all nodes in one batched query. Nodes missing any of the
// attributes are excluded. A non-empty allowedTags restricts hits to rows
// whose type tag is listed.
func (s *Strategy) MatchByAttrs(ctx context.Context, set *Set, nodes []*graph.Node, typeName string, attrNames []string, allowedTags []string) error {
	typ, ok := s.schema.Lookup(typeName)
	if !ok {
		return &errors.ValidationError{Field: "type", Value: typeName, Message: "unknown type"}
	}

	columns := make([]Column, 0, len(attrNames))
	attrs := make([]schema.Attribute, 0, len(attrNames))
	for _, name := range attrNames {
		attr, ok := typ.Attribute(name)
		if !ok {
			return &errors.ValidationError{Field: "attribute", Value: name, Message: "unknown attribute of " + typ.Name}
		}
		columns = append(columns, Column{Name: attr.Column, Cast: castFor(attr.Type)})
		attrs = append(attrs, attr)
	}

	var rows []Row
	for _, node := range nodes {
		values := make([]any, 0, len(attrs))
		for _, attr := range attrs {
			v, ok := node.Attr(attr.Name)
			if !ok || v == nil {
				values = nil
				break
			}
			values = append(values, v)
		}
		if values != nil {
			rows = append(rows, Row{NodeID: node.ID(), Values: values})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	lookup := NewLookup(typ.Name, typ.Table, columns...)
	if len(allowedTags) > 0 {
		lookup = lookup.Constrained(typ.TypeColumn, allowedTags)
	}
	return s.runLookup(ctx, set, lookup, rows)
}

// MatchByManyToOne matches nodes of one concrete type on the identity of
// their to-one related records. A node joins the batch only when every named
// relation already has exactly one match; a relation with several matches
// aborts the pass with an AmbiguityError, since no single foreign key value
// can stand for the node.
func (s *Strategy) MatchByManyToOne(ctx context.Context, set *Set, nodes []*graph.Node, typeName string, relationNames []string, allowedTags []string) error {
	typ, ok := s.schema.Lookup(typeName)
	if !ok {
		return &errors.ValidationError{Field: "type", Value: typeName, Message: "unknown type"}
	}

	columns := make([]Column, 0, len(relationNames))
	for _, name := range relationNames {
		rel, ok := typ.Relation(name)
		if !ok || rel.Kind != schema.ManyToOne {
			return &errors.ValidationError{Field: "relation", Value: name, Message: "not a to-one relation of " + typ.Name}
		}
		columns = append(columns, Column{Name: rel.Column, Cast: "bigint"})
	}

	var rows []Row
	for _, node := range nodes {
		values := make([]any, 0, len(relationNames))
		var ambiguous *AmbiguityError
		complete := true
		for _, name := range relationNames {
			var matches []Candidate
			related, ok := node.Relation(name)
			if ok {
				matches = set.Matches(related.ID())
			}
			switch {
			case len(matches) == 1:
				values = append(values, matches[0].ID)
			case len(matches) > 1 && ambiguous == nil:
				ambiguous = &AmbiguityError{NodeID: related.ID(), Relation: name, Candidates: matches}
				complete = false
			default:
				complete = false
			}
		}
		if ambiguous != nil {
			return ambiguous
		}
		if complete {
			rows = append(rows, Row{NodeID: node.ID(), Values: values})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	lookup := NewLookup(typ.Name, typ.Table, columns...)
	if len(allowedTags) > 0 {
		lookup = lookup.Constrained(typ.TypeColumn, allowedTags)
	}
	return s.runLookup(ctx, set, lookup, rows)
}

// MatchByOneToMany matches container nodes through their already matched
// members: a work whose identifier matched a persisted identifier row is the
// work that row points back at. Foreign keys are unioned across nodes and
// fetched in one query.
func (s *Strategy) MatchByOneToMany(ctx context.Context, set *Set, nodes []*graph.Node, typeName, relationName string) error {
	typ, ok := s.schema.Lookup(typeName)
	if !ok {
		return &errors.ValidationError{Field: "type", Value: typeName, Message: "unknown type"}
	}
	rel, ok := typ.Relation(relationName)
	if !ok || rel.Kind != schema.OneToMany {
		return &errors.ValidationError{Field: "relation", Value: relationName, Message: "not a to-many relation of " + typ.Name}
	}
	target, ok := s.schema.Lookup(rel.Target)
	if !ok {
		return &errors.ValidationError{Field: "type", Value: rel.Target, Message: "unknown type"}
	}
	back, ok := target.Relation(rel.Inverse)
	if !ok {
		return &errors.ValidationError{Field: "relation", Value: rel.Inverse, Message: "unknown inverse on " + target.Name}
	}
	fkColumn := back.Column

	perNode := make(map[string][]int64)
	union := make(map[int64]struct{})
	for _, node := range nodes {
		seen := make(map[int64]struct{})
		for _, related := range node.Related(relationName) {
			for _, c := range set.Matches(related.ID()) {
				fk, ok := c.Int64Field(fkColumn)
				if !ok {
					continue
				}
				if _, dup := seen[fk]; dup {
					continue
				}
				seen[fk] = struct{}{}
				perNode[node.ID()] = append(perNode[node.ID()], fk)
				union[fk] = struct{}{}
			}
		}
	}
	if len(union) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(union))
	for id := range union {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	records, err := s.store.RecordsByIDs(ctx, typ.Name, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]Candidate, len(records))
	for _, c := range records {
		byID[c.ID] = c
	}

	for _, node := range nodes {
		for _, fk := range perNode[node.ID()] {
			if c, ok := byID[fk]; ok {
				set.Add(node.ID(), c)
			}
		}
	}
	return nil
}

// MatchSubjects matches subject nodes one at a time, by URI first and then by
// name. Central subjects are looked up in the central taxonomy; others only
// within the configured source's taxonomy.
func (s *Strategy) MatchSubjects(ctx context.Context, set *Set, nodes []*graph.Node) error {
	for _, node := range nodes {
		var scope SubjectScope
		if _, hasCentral := node.Relation("central_synonym"); !hasCentral {
			scope = SubjectScope{Central: true}
		} else if s.source != "" {
			scope = SubjectScope{Source: s.source}
		} else {
			continue
		}

		for _, field := range []string{"uri", "name"} {
			value := node.StringAttr(field)
			if value == "" {
				continue
			}
			var (
				c   Candidate
				err error
			)
			if field == "uri" {
				c, err = s.store.SubjectByURI(ctx, scope, value)
			} else {
				c, err = s.store.SubjectByName(ctx, scope, value)
			}
			if err != nil {
				if errors.IsNotFound(err) {
					continue
				}
				return err
			}
			set.Add(node.ID(), c)
			break
		}
	}
	return nil
}

type scoredRelation struct {
	view RelationView
	row  WorkRelationRow
}

// MatchAgentWorkRelations is the fuzzy last resort for agent-work relations
// that nothing exact could place. For each matched work it compares the
// remaining relation nodes against the work's existing relations by cited-as
// name, agent name, citation order and relation subtype, taking the best
// candidate per node. A hit matches both the relation node and its agent.
func (s *Strategy) MatchAgentWorkRelations(ctx context.Context, set *Set, nodes []*graph.Node) error {
	log := logging.Ctx(ctx)

	seen := make(map[string]struct{})
	var workNodes []*graph.Node
	for _, node := range nodes {
		work, ok := node.Relation("creative_work")
		if !ok {
			continue
		}
		if _, dup := seen[work.ID()]; dup {
			continue
		}
		seen[work.ID()] = struct{}{}
		workNodes = append(workNodes, work)
	}

	for _, workNode := range workNodes {
		for _, work := range set.Matches(workNode.ID()) {
			count, err := s.store.CountAgentRelations(ctx, work.ID)
			if err != nil {
				return err
			}
			if count > s.maxAgentRelations {
				log.Debug().
					Int64("work", work.ID).
					Int("relations", count).
					Msg("skipping work with too many agent relations")
				continue
			}

			var relationNodes []*graph.Node
			for _, n := range workNode.Related("agent_relations") {
				if !set.Has(n.ID()) {
					relationNodes = append(relationNodes, n)
				}
			}
			if len(relationNodes) == 0 {
				continue
			}

			rows, err := s.store.AgentRelationsForWork(ctx, work.ID)
			if err != nil {
				return err
			}
			existing := make([]scoredRelation, 0, len(rows))
			for _, row := range rows {
				citedAs := row.Relation.StringField("cited_as")
				agentName := row.Agent.StringField("name")
				if s.tooLong(citedAs) || s.tooLong(agentName) {
					continue
				}
				existing = append(existing, scoredRelation{
					view: RelationView{
						CitedAs:    names.Parse(citedAs),
						AgentName:  names.Parse(agentName),
						OrderCited: orderCitedOf(row.Relation),
						Subtype:    row.Relation.Subtype,
					},
					row: row,
				})
			}

			for _, node := range relationNodes {
				agentNode, ok := node.Relation("agent")
				if !ok {
					continue
				}
				citedAs := node.StringAttr("cited_as")
				agentName := agentNode.StringAttr("name")
				if s.tooLong(citedAs) || s.tooLong(agentName) {
					continue
				}
				view := RelationView{
					CitedAs:    names.Parse(citedAs),
					AgentName:  names.Parse(agentName),
					OrderCited: orderCitedAttr(node),
					Subtype:    node.Type(),
				}

				best := -1
				var bestKey SortKey
				for i, candidate := range existing {
					key := CompareRelations(view, candidate.view)
					if !key.Valid() {
						continue
					}
					if best < 0 || key.Beats(bestKey) {
						best = i
						bestKey = key
					}
				}
				if best >= 0 {
					set.Add(agentNode.ID(), existing[best].row.Agent)
					set.Add(node.ID(), existing[best].row.Relation)
				}
			}
		}
	}
	return nil
}

// runLookup executes a built lookup in row chunks and records the hits.
func (s *Strategy) runLookup(ctx context.Context, set *Set, lookup *Lookup, rows []Row) error {
	limit := s.maxLookupRows
	if limit <= 0 {
		limit = len(rows)
	}
	for start := 0; start < len(rows); start += limit {
		end := start + limit
		if end > len(rows) {
			end = len(rows)
		}
		q, err := lookup.Build(rows[start:end])
		if err != nil {
			return err
		}
		matches, err := s.store.LookupByValues(ctx, q)
		if err != nil {
			return err
		}
		for _, m := range matches {
			set.Add(m.NodeID, m.Candidate)
		}
	}
	return nil
}

func (s *Strategy) tooLong(name string) bool {
	return utf8.RuneCountInString(name) > s.maxNameLength
}

func castFor(t schema.AttrType) string {
	switch t {
	case schema.Integer:
		return "bigint"
	case schema.Boolean:
		return "boolean"
	case schema.DateTime:
		return "timestamptz"
	case schema.Object:
		return "jsonb"
	default:
		return "text"
	}
}

func orderCitedOf(c Candidate) *int {
	if v, ok := c.Int64Field("order_cited"); ok {
		n := int(v)
		return &n
	}
	return nil
}

func orderCitedAttr(node *graph.Node) *int {
	if v, ok := node.IntAttr("order_cited"); ok {
		n := int(v)
		return &n
	}
	return nil
}
