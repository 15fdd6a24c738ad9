// Package graph provides the mutable in-memory graph of nodes that
// disambiguation operates on. Each node is one entity extracted from a
// source document, typed by a lowercase tag and carrying attributes and
// relations to other nodes. Nodes enter the graph with blank ids minted
// locally; resolution later binds them to persisted records.
package graph

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mattclark/SHARE/pkg/errors"
)

// Graph is an ordered collection of nodes with their relations. Nodes keep
// insertion order, so iteration and serialization are deterministic. A Graph
// is not safe for concurrent mutation.
type Graph struct {
	nodes map[string]*Node
	order []*Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// AddNode creates a node with a freshly minted blank id and adds it to the
// graph. The type tag is lowercased.
func (g *Graph) AddNode(typ string, attrs map[string]any) *Node {
	n, _ := g.AddNodeWithID(BlankPrefix+uuid.NewString(), typ, attrs)
	return n
}

// AddNodeWithID adds a node under an explicit id. It fails if the id is
// empty or already taken.
func (g *Graph) AddNodeWithID(id, typ string, attrs map[string]any) (*Node, error) {
	if id == "" {
		return nil, &errors.ValidationError{Field: "id", Message: "node id must not be empty"}
	}
	if _, taken := g.nodes[id]; taken {
		return nil, &errors.ValidationError{Field: "id", Value: id, Message: "node id already in graph"}
	}
	n := &Node{id: id, typ: strings.ToLower(typ)}
	n.SetAttrs(attrs)
	g.nodes[id] = n
	g.order = append(g.order, n)
	return n, nil
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice is a copy;
// removing nodes while iterating it is safe.
func (g *Graph) Nodes() []*Node {
	return append([]*Node(nil), g.order...)
}

// TypedNodes returns the nodes whose type tag equals any of the given tags,
// in insertion order.
func (g *Graph) TypedNodes(types ...string) []*Node {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[strings.ToLower(t)] = true
	}
	var out []*Node
	for _, n := range g.order {
		if want[n.typ] {
			out = append(out, n)
		}
	}
	return out
}

// Remove deletes a node from the graph and scrubs every relation that
// referenced it, so no dangling edges remain. Removing a node that is not in
// the graph is a no-op.
func (g *Graph) Remove(n *Node) {
	if n == nil {
		return
	}
	if current, ok := g.nodes[n.id]; !ok || current != n {
		return
	}
	delete(g.nodes, n.id)
	for i, o := range g.order {
		if o == n {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	for _, o := range g.order {
		o.dropReference(n)
	}
}
