package identifiers

import (
	"context"

	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/logging"
)

// Type tags of the identifier-bearing nodes a normalizer operates on.
const (
	WorkIdentifierType  = "workidentifier"
	AgentIdentifierType = "agentidentifier"
)

// Removal records one identifier node dropped during normalization.
type Removal struct {
	NodeID string `json:"node_id"`
	Type   string `json:"type"`
	URI    string `json:"uri"`
	Reason string `json:"reason"`
}

// Report summarizes one normalization run over a graph.
type Report struct {
	Accepted  int       `json:"accepted"`
	Rewritten int       `json:"rewritten"`
	Removed   []Removal `json:"removed,omitempty"`
}

// Normalizer canonicalizes the identifier nodes of a graph in place.
type Normalizer struct {
	policy Policy
}

// NewNormalizer returns a normalizer applying the given work-identifier
// policy.
func NewNormalizer(policy Policy) *Normalizer {
	return &Normalizer{policy: policy}
}

// NormalizeGraph rewrites every work- and agent-identifier node to canonical
// form. Each node ends in one of two states: accepted, with its attributes
// replaced by exactly uri, host, and scheme; or removed from the graph, when
// its uri is unparseable or (for work identifiers only) disallowed by
// policy. Other node types are untouched. The pass never fails; rejects are
// logged and reported.
func (n *Normalizer) NormalizeGraph(ctx context.Context, g *graph.Graph) Report {
	log := logging.Ctx(ctx)
	var report Report

	for _, node := range g.TypedNodes(WorkIdentifierType, AgentIdentifierType) {
		raw := node.StringAttr("uri")

		iri, err := Parse(raw)
		if err != nil {
			log.Warn().
				Str("node_id", node.ID()).
				Str("uri", raw).
				Err(err).
				Msg("discarding invalid identifier")
			g.Remove(node)
			report.Removed = append(report.Removed, Removal{
				NodeID: node.ID(), Type: node.Type(), URI: raw, Reason: err.Error(),
			})
			continue
		}

		if node.Type() == WorkIdentifierType {
			if err := n.policy.Check(iri); err != nil {
				log.Warn().
					Str("node_id", node.ID()).
					Str("uri", iri.URI).
					Str("authority", iri.Authority).
					Msg("discarding disallowed work identifier")
				g.Remove(node)
				report.Removed = append(report.Removed, Removal{
					NodeID: node.ID(), Type: node.Type(), URI: raw, Reason: err.Error(),
				})
				continue
			}
		}

		if raw != iri.URI {
			log.Debug().
				Str("node_id", node.ID()).
				Str("from", raw).
				Str("to", iri.URI).
				Msg("normalized identifier")
			report.Rewritten++
		}

		node.SetAttrs(map[string]any{
			"uri":    iri.URI,
			"host":   iri.Authority,
			"scheme": iri.Scheme,
		})
		report.Accepted++
	}
	return report
}
