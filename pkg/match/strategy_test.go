package match

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/logging"
)

type subjectCall struct {
	Scope SubjectScope
	Field string
	Value string
}

// fakeStore records every call and answers from canned data.
type fakeStore struct {
	lookups   []LookupQuery
	lookupFn  func(q LookupQuery) []RowMatch
	lookupErr error

	recordCalls []string
	recordIDs   [][]int64
	records     map[string][]Candidate

	subjectCalls []subjectCall
	subjects     map[subjectCall]Candidate

	countCalls []int64
	counts     map[int64]int

	relCalls []int64
	rels     map[int64][]WorkRelationRow
}

func (f *fakeStore) LookupByValues(_ context.Context, q LookupQuery) ([]RowMatch, error) {
	f.lookups = append(f.lookups, q)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if f.lookupFn != nil {
		return f.lookupFn(q), nil
	}
	return nil, nil
}

func (f *fakeStore) RecordsByIDs(_ context.Context, typeName string, ids []int64) ([]Candidate, error) {
	f.recordCalls = append(f.recordCalls, typeName)
	f.recordIDs = append(f.recordIDs, ids)
	return f.records[typeName], nil
}

func (f *fakeStore) SubjectByURI(_ context.Context, scope SubjectScope, uri string) (Candidate, error) {
	return f.subject(subjectCall{Scope: scope, Field: "uri", Value: uri})
}

func (f *fakeStore) SubjectByName(_ context.Context, scope SubjectScope, name string) (Candidate, error) {
	return f.subject(subjectCall{Scope: scope, Field: "name", Value: name})
}

func (f *fakeStore) subject(call subjectCall) (Candidate, error) {
	f.subjectCalls = append(f.subjectCalls, call)
	if c, ok := f.subjects[call]; ok {
		return c, nil
	}
	return Candidate{}, &errors.NotFoundError{Resource: "subject", ID: call.Value}
}

func (f *fakeStore) CountAgentRelations(_ context.Context, workID int64) (int, error) {
	f.countCalls = append(f.countCalls, workID)
	return f.counts[workID], nil
}

func (f *fakeStore) AgentRelationsForWork(_ context.Context, workID int64) ([]WorkRelationRow, error) {
	f.relCalls = append(f.relCalls, workID)
	return f.rels[workID], nil
}

// fakeResolver resolves from canned maps, failing refs it has never heard of
// as malformed.
type fakeResolver struct {
	calls   []string
	results map[string]Candidate
	errs    map[string]error
}

func (f *fakeResolver) Resolve(_ context.Context, ref string) (Candidate, error) {
	f.calls = append(f.calls, ref)
	if err, ok := f.errs[ref]; ok {
		return Candidate{}, err
	}
	if c, ok := f.results[ref]; ok {
		return c, nil
	}
	return Candidate{}, &errors.RefError{Ref: ref, Message: "malformed id"}
}

func addNode(t *testing.T, g *graph.Graph, id, typ string, attrs map[string]any) *graph.Node {
	t.Helper()
	n, err := g.AddNodeWithID(id, typ, attrs)
	require.NoError(t, err)
	return n
}

func TestInitialPass(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	addNode(t, g, "_:blank", "creativework", nil)
	good := addNode(t, g, "CreativeWork:0000-0000-0000-002A", "creativework", nil)
	addNode(t, g, "garbage", "creativework", nil)
	missing := addNode(t, g, "CreativeWork:FFFF-FFFF-FFFF-FFFF", "creativework", nil)

	resolver := &fakeResolver{
		results: map[string]Candidate{
			good.ID(): {ID: 42, Type: "CreativeWork", Subtype: "article"},
		},
		errs: map[string]error{
			missing.ID(): &errors.NotFoundError{Resource: "creativework", ID: missing.ID()},
		},
	}
	s := NewStrategy(&fakeStore{}, resolver)
	set := NewSet()
	require.NoError(t, s.InitialPass(context.Background(), set, g.Nodes()))

	// The blank node is never resolved; the rest are tried in graph order.
	assert.Equal(t, []string{good.ID(), "garbage", missing.ID()}, resolver.calls)
	assert.Equal(t, 1, set.Len())
	c, ok := set.One(good.ID())
	require.True(t, ok)
	assert.Equal(t, int64(42), c.ID)
}

func TestInitialPassPropagatesStoreErrors(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	broken := addNode(t, g, "CreativeWork:0000-0000-0000-0001", "creativework", nil)

	resolver := &fakeResolver{
		errs: map[string]error{
			broken.ID(): &errors.DatabaseError{Operation: "query", Table: "share_creativework", Message: "connection lost"},
		},
	}
	s := NewStrategy(&fakeStore{}, resolver)
	err := s.InitialPass(context.Background(), NewSet(), g.Nodes())
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
}

func TestMatchByAttrsBatchesOneCall(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	for i := 0; i < 600; i++ {
		addNode(t, g, fmt.Sprintf("_:i%03d", i), "workidentifier",
			map[string]any{"uri": fmt.Sprintf("http://example.com/%d", i)})
	}

	store := &fakeStore{
		lookupFn: func(q LookupQuery) []RowMatch {
			return []RowMatch{{NodeID: "_:i007", Candidate: Candidate{ID: 7, Type: "WorkIdentifier"}}}
		},
	}
	s := NewStrategy(store, &fakeResolver{})
	set := NewSet()
	err := s.MatchByAttrs(context.Background(), set, g.TypedNodes("workidentifier"), "WorkIdentifier", []string{"uri"}, nil)
	require.NoError(t, err)

	require.Len(t, store.lookups, 1)
	assert.Len(t, store.lookups[0].Args, 1200)
	assert.True(t, set.Has("_:i007"))
	assert.Equal(t, 1, set.Len())
}

func TestMatchByAttrsSkipsIncompleteNodes(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	addNode(t, g, "_:full", "workidentifier", map[string]any{"uri": "http://example.com/1"})
	addNode(t, g, "_:empty", "workidentifier", nil)
	addNode(t, g, "_:nil", "workidentifier", map[string]any{"uri": nil})

	store := &fakeStore{}
	s := NewStrategy(store, &fakeResolver{})
	err := s.MatchByAttrs(context.Background(), NewSet(), g.TypedNodes("workidentifier"), "WorkIdentifier", []string{"uri"}, nil)
	require.NoError(t, err)

	require.Len(t, store.lookups, 1)
	assert.Equal(t, []any{"_:full", "http://example.com/1"}, store.lookups[0].Args)
}

func TestMatchByAttrsNoEligibleNodesSkipsQuery(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	addNode(t, g, "_:empty", "workidentifier", nil)

	store := &fakeStore{}
	s := NewStrategy(store, &fakeResolver{})
	err := s.MatchByAttrs(context.Background(), NewSet(), g.TypedNodes("workidentifier"), "WorkIdentifier", []string{"uri"}, nil)
	require.NoError(t, err)
	assert.Empty(t, store.lookups)
}

func TestMatchByAttrsRejectsUnknownNames(t *testing.T) {
	s := NewStrategy(&fakeStore{}, &fakeResolver{})
	err := s.MatchByAttrs(context.Background(), NewSet(), nil, "Nonesuch", []string{"uri"}, nil)
	assert.True(t, errors.IsValidationError(err))

	err = s.MatchByAttrs(context.Background(), NewSet(), nil, "Tag", []string{"color"}, nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestMatchByManyToOne(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	tag := addNode(t, g, "_:t", "tag", map[string]any{"name": "science"})
	work := addNode(t, g, "_:w", "article", nil)
	through := addNode(t, g, "_:tt", "throughtags", nil)
	through.SetRelation("tag", tag)
	through.SetRelation("creative_work", work)

	orphan := addNode(t, g, "_:tt2", "throughtags", nil)
	orphan.SetRelation("tag", addNode(t, g, "_:t2", "tag", nil))
	orphan.SetRelation("creative_work", work)

	set := NewSet()
	set.Add("_:t", Candidate{ID: 3, Type: "Tag"})
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork", Subtype: "article"})

	store := &fakeStore{
		lookupFn: func(q LookupQuery) []RowMatch {
			return []RowMatch{{NodeID: "_:tt", Candidate: Candidate{ID: 77, Type: "ThroughTags"}}}
		},
	}
	s := NewStrategy(store, &fakeResolver{})
	err := s.MatchByManyToOne(context.Background(), set, g.TypedNodes("throughtags"), "ThroughTags", []string{"tag", "creative_work"}, nil)
	require.NoError(t, err)

	// Only the fully-matched node joins the batch, keyed by FK values.
	require.Len(t, store.lookups, 1)
	assert.Equal(t, []any{"_:tt", int64(3), int64(5)}, store.lookups[0].Args)
	assert.Contains(t, store.lookups[0].SQL, "share_throughtags")
	assert.True(t, set.Has("_:tt"))
	assert.False(t, set.Has("_:tt2"))
}

func TestMatchByManyToOneAmbiguity(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	tag := addNode(t, g, "_:t", "tag", map[string]any{"name": "science"})
	work := addNode(t, g, "_:w", "article", nil)
	through := addNode(t, g, "_:tt", "throughtags", nil)
	through.SetRelation("tag", tag)
	through.SetRelation("creative_work", work)

	set := NewSet()
	set.Add("_:t", Candidate{ID: 3, Type: "Tag"})
	set.Add("_:t", Candidate{ID: 4, Type: "Tag"})
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork"})

	store := &fakeStore{}
	s := NewStrategy(store, &fakeResolver{})
	err := s.MatchByManyToOne(context.Background(), set, g.TypedNodes("throughtags"), "ThroughTags", []string{"tag", "creative_work"}, nil)

	require.Error(t, err)
	assert.True(t, errors.IsAmbiguous(err))
	var ambiguous *AmbiguityError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "_:t", ambiguous.NodeID)
	assert.Equal(t, "tag", ambiguous.Relation)
	assert.Len(t, ambiguous.Candidates, 2)
	assert.Empty(t, store.lookups)
}

func TestMatchByOneToManyUnionsOneFetch(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	w1 := addNode(t, g, "_:w1", "article", nil)
	w2 := addNode(t, g, "_:w2", "preprint", nil)
	w3 := addNode(t, g, "_:w3", "article", nil)
	i1 := addNode(t, g, "_:i1", "workidentifier", nil)
	i2 := addNode(t, g, "_:i2", "workidentifier", nil)
	i3 := addNode(t, g, "_:i3", "workidentifier", nil)
	i4 := addNode(t, g, "_:i4", "workidentifier", nil)
	w1.SetRelated("identifiers", i1, i2)
	w2.SetRelated("identifiers", i3)
	w3.SetRelated("identifiers", i4)

	set := NewSet()
	set.Add("_:i1", Candidate{ID: 101, Type: "WorkIdentifier", Fields: map[string]any{"creative_work_id": int64(9)}})
	set.Add("_:i2", Candidate{ID: 102, Type: "WorkIdentifier", Fields: map[string]any{"creative_work_id": int64(9)}})
	set.Add("_:i3", Candidate{ID: 103, Type: "WorkIdentifier", Fields: map[string]any{"creative_work_id": int64(5)}})

	store := &fakeStore{
		records: map[string][]Candidate{
			"CreativeWork": {
				{ID: 5, Type: "CreativeWork", Subtype: "preprint"},
				{ID: 9, Type: "CreativeWork", Subtype: "article"},
			},
		},
	}
	s := NewStrategy(store, &fakeResolver{})
	err := s.MatchByOneToMany(context.Background(), set, []*graph.Node{w1, w2, w3}, "CreativeWork", "identifiers")
	require.NoError(t, err)

	require.Equal(t, []string{"CreativeWork"}, store.recordCalls)
	assert.Equal(t, [][]int64{{5, 9}}, store.recordIDs)

	c1, ok := set.One("_:w1")
	require.True(t, ok)
	assert.Equal(t, int64(9), c1.ID)
	c2, ok := set.One("_:w2")
	require.True(t, ok)
	assert.Equal(t, int64(5), c2.ID)
	assert.False(t, set.Has("_:w3"))
}

func TestMatchByOneToManyNothingMatchedSkipsFetch(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	w := addNode(t, g, "_:w", "article", nil)
	w.SetRelated("identifiers", addNode(t, g, "_:i", "workidentifier", nil))

	store := &fakeStore{}
	s := NewStrategy(store, &fakeResolver{})
	err := s.MatchByOneToMany(context.Background(), NewSet(), []*graph.Node{w}, "CreativeWork", "identifiers")
	require.NoError(t, err)
	assert.Empty(t, store.recordCalls)
}

func TestMatchSubjectsCentral(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	addNode(t, g, "_:s1", "subject", map[string]any{"name": "Biology", "uri": "http://x/bio"})
	addNode(t, g, "_:s2", "subject", map[string]any{"name": "Chemistry"})

	central := SubjectScope{Central: true}
	store := &fakeStore{
		subjects: map[subjectCall]Candidate{
			{Scope: central, Field: "uri", Value: "http://x/bio"}: {ID: 11, Type: "Subject"},
			{Scope: central, Field: "name", Value: "Chemistry"}:   {ID: 12, Type: "Subject"},
		},
	}
	s := NewStrategy(store, &fakeResolver{})
	set := NewSet()
	require.NoError(t, s.MatchSubjects(context.Background(), set, g.TypedNodes("subject")))

	// URI hits first and short-circuits; name is only the fallback.
	assert.Equal(t, []subjectCall{
		{Scope: central, Field: "uri", Value: "http://x/bio"},
		{Scope: central, Field: "name", Value: "Chemistry"},
	}, store.subjectCalls)

	c1, _ := set.One("_:s1")
	assert.Equal(t, int64(11), c1.ID)
	c2, _ := set.One("_:s2")
	assert.Equal(t, int64(12), c2.ID)
}

func TestMatchSubjectsURIFallsBackToName(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	addNode(t, g, "_:s", "subject", map[string]any{"name": "Physics", "uri": "http://x/unknown"})

	central := SubjectScope{Central: true}
	store := &fakeStore{
		subjects: map[subjectCall]Candidate{
			{Scope: central, Field: "name", Value: "Physics"}: {ID: 13, Type: "Subject"},
		},
	}
	s := NewStrategy(store, &fakeResolver{})
	set := NewSet()
	require.NoError(t, s.MatchSubjects(context.Background(), set, g.TypedNodes("subject")))

	require.Len(t, store.subjectCalls, 2)
	assert.Equal(t, "uri", store.subjectCalls[0].Field)
	assert.Equal(t, "name", store.subjectCalls[1].Field)
	assert.True(t, set.Has("_:s"))
}

func TestMatchSubjectsScopedToSource(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	central := addNode(t, g, "_:c", "subject", nil)
	synonym := addNode(t, g, "_:syn", "subject", map[string]any{"name": "Biologie"})
	synonym.SetRelation("central_synonym", central)

	scoped := SubjectScope{Source: "osf"}
	store := &fakeStore{
		subjects: map[subjectCall]Candidate{
			{Scope: scoped, Field: "name", Value: "Biologie"}: {ID: 21, Type: "Subject"},
		},
	}
	s := NewStrategy(store, &fakeResolver{}, WithSource("osf"))
	set := NewSet()
	require.NoError(t, s.MatchSubjects(context.Background(), set, []*graph.Node{synonym}))

	require.Len(t, store.subjectCalls, 1)
	assert.Equal(t, scoped, store.subjectCalls[0].Scope)
	assert.True(t, set.Has("_:syn"))
}

func TestMatchSubjectsSynonymWithoutSourceSkipped(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	central := addNode(t, g, "_:c", "subject", nil)
	synonym := addNode(t, g, "_:syn", "subject", map[string]any{"name": "Biologie"})
	synonym.SetRelation("central_synonym", central)

	store := &fakeStore{}
	s := NewStrategy(store, &fakeResolver{})
	require.NoError(t, s.MatchSubjects(context.Background(), NewSet(), []*graph.Node{synonym}))
	assert.Empty(t, store.subjectCalls)
}

func relationFixture(t *testing.T) (*graph.Graph, []*graph.Node) {
	t.Helper()
	g := graph.New()
	work := addNode(t, g, "_:w", "article", nil)
	a1 := addNode(t, g, "_:a1", "person", map[string]any{"name": "Jane Doe"})
	a2 := addNode(t, g, "_:a2", "person", map[string]any{"name": "Mary Smith"})

	r1 := addNode(t, g, "_:r1", "creator", map[string]any{"cited_as": "Doe, Jane", "order_cited": 1})
	r1.SetRelation("agent", a1)
	r1.SetRelation("creative_work", work)
	r2 := addNode(t, g, "_:r2", "creator", map[string]any{"cited_as": "Mary Smith", "order_cited": 2})
	r2.SetRelation("agent", a2)
	r2.SetRelation("creative_work", work)
	work.SetRelated("agent_relations", r1, r2)

	return g, []*graph.Node{r1, r2}
}

func TestMatchAgentWorkRelations(t *testing.T) {
	logging.DisableLoggingForTest(t)
	_, relations := relationFixture(t)

	set := NewSet()
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork", Subtype: "article"})

	store := &fakeStore{
		counts: map[int64]int{5: 2},
		rels: map[int64][]WorkRelationRow{
			5: {
				{
					Relation: Candidate{ID: 301, Type: "AgentWorkRelation", Subtype: "creator",
						Fields: map[string]any{"cited_as": "Jane Doe", "order_cited": int64(1)}},
					Agent: Candidate{ID: 7, Type: "Agent", Subtype: "person",
						Fields: map[string]any{"name": "Jane Doe"}},
				},
				{
					Relation: Candidate{ID: 302, Type: "AgentWorkRelation", Subtype: "creator",
						Fields: map[string]any{"cited_as": "J. Doe", "order_cited": int64(2)}},
					Agent: Candidate{ID: 8, Type: "Agent", Subtype: "person",
						Fields: map[string]any{"name": "J. Doe"}},
				},
			},
		},
	}
	s := NewStrategy(store, &fakeResolver{})
	require.NoError(t, s.MatchAgentWorkRelations(context.Background(), set, relations))

	assert.Equal(t, []int64{5}, store.countCalls)
	assert.Equal(t, []int64{5}, store.relCalls)

	// The comma form still lands on the exact row, and the hit carries the
	// agent along with the relation.
	rel, ok := set.One("_:r1")
	require.True(t, ok)
	assert.Equal(t, int64(301), rel.ID)
	agent, ok := set.One("_:a1")
	require.True(t, ok)
	assert.Equal(t, int64(7), agent.ID)

	// Nothing resembles Mary Smith, so neither she nor her relation match.
	assert.False(t, set.Has("_:r2"))
	assert.False(t, set.Has("_:a2"))
}

func TestMatchAgentWorkRelationsSkipsBusyWorks(t *testing.T) {
	logging.DisableLoggingForTest(t)
	_, relations := relationFixture(t)

	set := NewSet()
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork"})

	store := &fakeStore{counts: map[int64]int{5: 400}}
	s := NewStrategy(store, &fakeResolver{})
	require.NoError(t, s.MatchAgentWorkRelations(context.Background(), set, relations))

	assert.Equal(t, []int64{5}, store.countCalls)
	assert.Empty(t, store.relCalls)
	assert.False(t, set.Has("_:r1"))
}

func TestMatchAgentWorkRelationsHonorsRelationCeilingOption(t *testing.T) {
	logging.DisableLoggingForTest(t)
	_, relations := relationFixture(t)

	set := NewSet()
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork"})

	store := &fakeStore{counts: map[int64]int{5: 400}}
	s := NewStrategy(store, &fakeResolver{}, WithMaxAgentRelations(450))
	require.NoError(t, s.MatchAgentWorkRelations(context.Background(), set, relations))
	assert.Equal(t, []int64{5}, store.relCalls)
}

func TestMatchAgentWorkRelationsSkipsMatchedNodes(t *testing.T) {
	logging.DisableLoggingForTest(t)
	_, relations := relationFixture(t)

	set := NewSet()
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork"})
	set.Add("_:r1", Candidate{ID: 301, Type: "AgentWorkRelation"})
	set.Add("_:r2", Candidate{ID: 302, Type: "AgentWorkRelation"})

	store := &fakeStore{counts: map[int64]int{5: 2}}
	s := NewStrategy(store, &fakeResolver{})
	require.NoError(t, s.MatchAgentWorkRelations(context.Background(), set, relations))

	// Every relation node already matched, so the rows are never fetched.
	assert.Equal(t, []int64{5}, store.countCalls)
	assert.Empty(t, store.relCalls)
}

func TestMatchAgentWorkRelationsExcludesLongNames(t *testing.T) {
	logging.DisableLoggingForTest(t)
	longName := strings.Repeat("x", 201)

	g := graph.New()
	work := addNode(t, g, "_:w", "article", nil)
	agent := addNode(t, g, "_:a", "person", map[string]any{"name": "Jane Doe"})
	rel := addNode(t, g, "_:r", "creator", map[string]any{"cited_as": "Jane Doe"})
	rel.SetRelation("agent", agent)
	rel.SetRelation("creative_work", work)
	work.SetRelated("agent_relations", rel)

	set := NewSet()
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork"})

	store := &fakeStore{
		counts: map[int64]int{5: 1},
		rels: map[int64][]WorkRelationRow{
			5: {{
				Relation: Candidate{ID: 301, Type: "AgentWorkRelation", Subtype: "creator",
					Fields: map[string]any{"cited_as": "Jane Doe"}},
				Agent: Candidate{ID: 7, Type: "Agent", Subtype: "person",
					Fields: map[string]any{"name": longName}},
			}},
		},
	}
	s := NewStrategy(store, &fakeResolver{})
	require.NoError(t, s.MatchAgentWorkRelations(context.Background(), set, []*graph.Node{rel}))

	// The only stored row carries an overlong agent name, so nothing matches
	// even though the cited-as strings agree exactly.
	assert.False(t, set.Has("_:r"))
}

func TestMatchAgentWorkRelationsFirstWinsOnTie(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	work := addNode(t, g, "_:w", "article", nil)
	agent := addNode(t, g, "_:a", "person", map[string]any{"name": "Jane Doe"})
	rel := addNode(t, g, "_:r", "creator", map[string]any{"cited_as": "Jane Doe", "order_cited": 1})
	rel.SetRelation("agent", agent)
	rel.SetRelation("creative_work", work)
	work.SetRelated("agent_relations", rel)

	set := NewSet()
	set.Add("_:w", Candidate{ID: 5, Type: "CreativeWork"})

	row := func(relID, agentID int64) WorkRelationRow {
		return WorkRelationRow{
			Relation: Candidate{ID: relID, Type: "AgentWorkRelation", Subtype: "creator",
				Fields: map[string]any{"cited_as": "Jane Doe", "order_cited": int64(1)}},
			Agent: Candidate{ID: agentID, Type: "Agent", Subtype: "person",
				Fields: map[string]any{"name": "Jane Doe"}},
		}
	}
	store := &fakeStore{
		counts: map[int64]int{5: 2},
		rels:   map[int64][]WorkRelationRow{5: {row(301, 7), row(302, 8)}},
	}
	s := NewStrategy(store, &fakeResolver{})
	require.NoError(t, s.MatchAgentWorkRelations(context.Background(), set, []*graph.Node{rel}))

	got, ok := set.One("_:r")
	require.True(t, ok)
	assert.Equal(t, int64(301), got.ID)
}
