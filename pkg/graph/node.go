package graph

import (
	"sort"
	"strings"
)

// BlankPrefix marks locally-scoped temporary node ids minted by the upstream
// parser. Ids without the prefix are opaque references to persisted records.
const BlankPrefix = "_:"

// IsBlankID reports whether id is a locally-scoped temporary id rather than
// a reference to a persisted record.
func IsBlankID(id string) bool {
	return strings.HasPrefix(id, BlankPrefix)
}

// Node is one entity extracted from a source document, pending resolution.
// A node carries a type tag, a mutable attribute map, and named relations to
// other nodes in the same graph. Nodes are created through a Graph and are
// only meaningful inside the graph that owns them.
type Node struct {
	id    string
	typ   string
	attrs map[string]any
	one   map[string]*Node
	many  map[string][]*Node
}

// ID returns the node id. Blank ids (see IsBlankID) are temporary; all other
// ids reference persisted records.
func (n *Node) ID() string {
	return n.id
}

// Type returns the node's type tag, lowercased (e.g. "preprint",
// "workidentifier").
func (n *Node) Type() string {
	return n.typ
}

// Attr returns the named attribute value and whether it is present.
func (n *Node) Attr(name string) (any, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// StringAttr returns the named attribute as a string, or "" when absent or
// not a string.
func (n *Node) StringAttr(name string) string {
	if v, ok := n.attrs[name].(string); ok {
		return v
	}
	return ""
}

// IntAttr returns the named attribute as an int. JSON numbers decode as
// float64, so both forms are accepted.
func (n *Node) IntAttr(name string) (int, bool) {
	switch v := n.attrs[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Attrs returns a copy of the node's attribute map.
func (n *Node) Attrs() map[string]any {
	out := make(map[string]any, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// AttrNames returns the node's attribute names, sorted.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetAttr sets a single attribute value.
func (n *Node) SetAttr(name string, value any) {
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	n.attrs[name] = value
}

// SetAttrs replaces the node's attribute map wholesale. Attributes not in
// attrs are dropped.
func (n *Node) SetAttrs(attrs map[string]any) {
	n.attrs = make(map[string]any, len(attrs))
	for k, v := range attrs {
		n.attrs[k] = v
	}
}

// Relation returns the single-valued relation target, if set.
func (n *Node) Relation(name string) (*Node, bool) {
	t, ok := n.one[name]
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

// Related returns the ordered targets of a multi-valued relation. The
// returned slice is shared; callers must not mutate it.
func (n *Node) Related(name string) []*Node {
	return n.many[name]
}

// SetRelation sets a single-valued relation to another node in the same
// graph. A nil target clears the relation.
func (n *Node) SetRelation(name string, target *Node) {
	if target == nil {
		delete(n.one, name)
		return
	}
	if n.one == nil {
		n.one = make(map[string]*Node)
	}
	n.one[name] = target
}

// SetRelated replaces a multi-valued relation with the given ordered targets.
func (n *Node) SetRelated(name string, targets ...*Node) {
	if len(targets) == 0 {
		delete(n.many, name)
		return
	}
	if n.many == nil {
		n.many = make(map[string][]*Node)
	}
	n.many[name] = append([]*Node(nil), targets...)
}

// RelationNames returns the names of all set relations, single-valued first,
// each group sorted.
func (n *Node) RelationNames() []string {
	ones := make([]string, 0, len(n.one))
	for k := range n.one {
		ones = append(ones, k)
	}
	sort.Strings(ones)

	manys := make([]string, 0, len(n.many))
	for k := range n.many {
		manys = append(manys, k)
	}
	sort.Strings(manys)

	return append(ones, manys...)
}

// dropReference removes every relation edge from n to target.
func (n *Node) dropReference(target *Node) {
	for name, t := range n.one {
		if t == target {
			delete(n.one, name)
		}
	}
	for name, list := range n.many {
		kept := list[:0]
		for _, t := range list {
			if t != target {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(n.many, name)
		} else {
			n.many[name] = kept
		}
	}
}
