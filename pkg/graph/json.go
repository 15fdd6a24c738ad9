package graph

import (
	"encoding/json"
	"fmt"

	"github.com/mattclark/SHARE/pkg/errors"
)

// nodeJSON is the wire form of a single node. Relations hold ids only: a
// string for single-valued relations, an array of strings for multi-valued
// ones.
type nodeJSON struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Attrs     map[string]any `json:"attrs,omitempty"`
	Relations map[string]any `json:"relations,omitempty"`
}

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
}

// MarshalJSON encodes the graph with nodes in insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphJSON{Nodes: make([]nodeJSON, 0, len(g.order))}
	for _, n := range g.order {
		nj := nodeJSON{ID: n.id, Type: n.typ, Attrs: n.attrs}
		if len(n.one) > 0 || len(n.many) > 0 {
			nj.Relations = make(map[string]any, len(n.one)+len(n.many))
			for name, t := range n.one {
				nj.Relations[name] = t.id
			}
			for name, list := range n.many {
				ids := make([]string, len(list))
				for i, t := range list {
					ids[i] = t.id
				}
				nj.Relations[name] = ids
			}
		}
		doc.Nodes = append(doc.Nodes, nj)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a graph document. Nodes are created first, then
// relations are wired, so forward references are fine. A relation naming an
// id that is not in the document is an error.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.WrapParse("json", "graph document", err)
	}

	g.nodes = make(map[string]*Node, len(doc.Nodes))
	g.order = nil

	for _, nj := range doc.Nodes {
		if nj.Type == "" {
			return parseErr(fmt.Sprintf("node %q has no type", nj.ID))
		}
		if _, err := g.AddNodeWithID(nj.ID, nj.Type, nj.Attrs); err != nil {
			return parseErr(err.Error())
		}
	}

	for _, nj := range doc.Nodes {
		n := g.nodes[nj.ID]
		for name, raw := range nj.Relations {
			switch ref := raw.(type) {
			case string:
				target, ok := g.nodes[ref]
				if !ok {
					return parseErr(fmt.Sprintf("node %q relation %q references unknown id %q", nj.ID, name, ref))
				}
				n.SetRelation(name, target)
			case []any:
				targets := make([]*Node, 0, len(ref))
				for _, item := range ref {
					id, ok := item.(string)
					if !ok {
						return parseErr(fmt.Sprintf("node %q relation %q contains a non-string id", nj.ID, name))
					}
					target, ok := g.nodes[id]
					if !ok {
						return parseErr(fmt.Sprintf("node %q relation %q references unknown id %q", nj.ID, name, id))
					}
					targets = append(targets, target)
				}
				n.SetRelated(name, targets...)
			default:
				return parseErr(fmt.Sprintf("node %q relation %q must be an id or an array of ids", nj.ID, name))
			}
		}
	}
	return nil
}

// Parse decodes a graph from its JSON wire form.
func Parse(data []byte) (*Graph, error) {
	g := New()
	if err := g.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return g, nil
}

func parseErr(msg string) error {
	return &errors.ParseError{Format: "json", File: "graph document", Message: msg}
}
