package identifiers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/logging"
)

func buildGraph(t *testing.T) (*graph.Graph, map[string]*graph.Node) {
	t.Helper()
	g := graph.New()
	nodes := map[string]*graph.Node{}

	work := g.AddNode("preprint", map[string]any{"title": "Testing"})
	nodes["work"] = work

	add := func(key, typ, uri string) *graph.Node {
		n := g.AddNode(typ, map[string]any{"uri": uri, "junk": "extra"})
		nodes[key] = n
		return n
	}

	doi := add("doi", WorkIdentifierType, "10.1000/xyz123")
	mailto := add("mailto", WorkIdentifierType, "mailto:jane@example.com")
	issn := add("issn", WorkIdentifierType, "0378-5955")
	orcid := add("orcid", WorkIdentifierType, "http://orcid.org/0000-0002-1825-0097")
	junk := add("junk", WorkIdentifierType, "not really anything")
	add("agent_orcid", AgentIdentifierType, "0000-0002-1825-0097")
	add("agent_mailto", AgentIdentifierType, "MAILTO:Jane@Example.com")

	work.SetRelated("identifiers", doi, mailto, issn, orcid, junk)
	return g, nodes
}

func TestNormalizeGraph(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g, nodes := buildGraph(t)

	report := NewNormalizer(DefaultPolicy()).NormalizeGraph(context.Background(), g)

	assert.Equal(t, 3, report.Accepted)
	assert.Equal(t, 3, report.Rewritten)
	assert.Len(t, report.Removed, 4)

	// The surviving work identifier is rewritten to exactly uri, host, scheme.
	doi := nodes["doi"]
	assert.Equal(t, []string{"host", "scheme", "uri"}, doi.AttrNames())
	assert.Equal(t, "http://dx.doi.org/10.1000/XYZ123", doi.StringAttr("uri"))
	assert.Equal(t, "dx.doi.org", doi.StringAttr("host"))
	assert.Equal(t, "http", doi.StringAttr("scheme"))

	// Work identifiers pointing at registries or mailboxes are gone, and the
	// work's relation list no longer references them.
	for _, key := range []string{"mailto", "issn", "orcid", "junk"} {
		_, present := g.Node(nodes[key].ID())
		assert.False(t, present, "%s work identifier should be removed", key)
	}
	remaining := nodes["work"].Related("identifiers")
	require.Len(t, remaining, 1)
	assert.Same(t, doi, remaining[0])

	// Agent identifiers are exempt from the work policy.
	agentOrcid := nodes["agent_orcid"]
	assert.Equal(t, "http://orcid.org/0000-0002-1825-0097", agentOrcid.StringAttr("uri"))
	assert.Equal(t, "orcid.org", agentOrcid.StringAttr("host"))

	agentMailto := nodes["agent_mailto"]
	assert.Equal(t, "mailto:jane@example.com", agentMailto.StringAttr("uri"))
	assert.Equal(t, "mailto", agentMailto.StringAttr("scheme"))
}

func TestNormalizeGraphIdempotent(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g, _ := buildGraph(t)

	n := NewNormalizer(DefaultPolicy())
	n.NormalizeGraph(context.Background(), g)
	second := n.NormalizeGraph(context.Background(), g)

	assert.Equal(t, 3, second.Accepted)
	assert.Zero(t, second.Rewritten, "canonical output must be a fixed point")
	assert.Empty(t, second.Removed)
}

func TestNormalizeGraphPermissivePolicy(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	n := g.AddNode(WorkIdentifierType, map[string]any{"uri": "mailto:jane@example.com"})

	NewNormalizer(Policy{}).NormalizeGraph(context.Background(), g)

	_, present := g.Node(n.ID())
	assert.True(t, present, "an empty policy disallows nothing")
	assert.Equal(t, "mailto:jane@example.com", n.StringAttr("uri"))
}

func TestNormalizeGraphIgnoresOtherTypes(t *testing.T) {
	logging.DisableLoggingForTest(t)
	g := graph.New()
	person := g.AddNode("person", map[string]any{"uri": "not really anything", "name": "Jane"})

	report := NewNormalizer(DefaultPolicy()).NormalizeGraph(context.Background(), g)

	assert.Zero(t, report.Accepted)
	assert.Empty(t, report.Removed)
	assert.Equal(t, "not really anything", person.StringAttr("uri"))
}

func TestNormalizeGraphLogsRejects(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	g := graph.New()
	g.AddNode(WorkIdentifierType, map[string]any{"uri": "mailto:jane@example.com"})

	NewNormalizer(DefaultPolicy()).NormalizeGraph(context.Background(), g)

	tl.AssertContains(t, "discarding disallowed work identifier")
}
