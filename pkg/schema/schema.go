// Package schema is the static description of the persisted type system:
// concrete types with their tables, subtype lineage, attribute columns, and
// relation shapes. It replaces runtime model introspection; everything the
// matcher needs to build queries is declared in an embedded document and
// resolved at load.
package schema

import (
	"strings"
)

// RelationKind is the shape of a relation between two concrete types.
type RelationKind string

const (
	OneToMany  RelationKind = "one_to_many"
	ManyToOne  RelationKind = "many_to_one"
	ManyToMany RelationKind = "many_to_many"
)

// AttrType is the data type of a persisted attribute column.
type AttrType string

const (
	Boolean  AttrType = "boolean"
	String   AttrType = "string"
	Integer  AttrType = "integer"
	DateTime AttrType = "datetime"
	Object   AttrType = "object"
)

// TagPrefix prefixes every subtype discriminator value.
const TagPrefix = "share."

// SubtypeTag renders the discriminator value naming a subtype, e.g.
// "share.preprint" for Preprint.
func SubtypeTag(name string) string {
	return TagPrefix + strings.ToLower(name)
}

// Attribute is one persisted column of a concrete type.
type Attribute struct {
	Name   string   `yaml:"name" json:"name"`
	Column string   `yaml:"column,omitempty" json:"column,omitempty"` // defaults to Name
	Type   AttrType `yaml:"type" json:"type"`
	Format string   `yaml:"format,omitempty" json:"format,omitempty"` // "uri" or empty
}

// Relation is one declared relation of a concrete type. Column is the FK
// column on this type's own table and is set only for many-to-one; Through
// names the join type and is set only for many-to-many.
type Relation struct {
	Name    string       `yaml:"name" json:"name"`
	Kind    RelationKind `yaml:"kind" json:"kind"`
	Target  string       `yaml:"target" json:"target"`
	Column  string       `yaml:"column,omitempty" json:"column,omitempty"`
	Inverse string       `yaml:"inverse,omitempty" json:"inverse,omitempty"`
	Through string       `yaml:"through,omitempty" json:"through,omitempty"`
}

// Subtype is one concrete subtype of a type. Parent, when set, names another
// subtype of the same type; lineage is at most two levels deep.
type Subtype struct {
	Name   string `yaml:"name" json:"name"`
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`
}

// Type is one concrete persisted type: a table plus its subtype lineage,
// attributes, and relations.
type Type struct {
	Name       string      `yaml:"name" json:"name"`
	Table      string      `yaml:"table" json:"table"`
	TypeColumn string      `yaml:"type_column,omitempty" json:"type_column,omitempty"`
	Subtypes   []Subtype   `yaml:"subtypes,omitempty" json:"subtypes,omitempty"`
	Attributes []Attribute `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Relations  []Relation  `yaml:"relations,omitempty" json:"relations,omitempty"`

	attrIndex map[string]int
	relIndex  map[string]int
	children  map[string][]string
}

// HasSubtypes reports whether the type carries a subtype discriminator.
func (t *Type) HasSubtypes() bool {
	return len(t.Subtypes) > 0
}

// Attribute returns the named attribute, case-insensitively.
func (t *Type) Attribute(name string) (Attribute, bool) {
	i, ok := t.attrIndex[strings.ToLower(name)]
	if !ok {
		return Attribute{}, false
	}
	return t.Attributes[i], true
}

// Relation returns the named relation, case-insensitively.
func (t *Type) Relation(name string) (Relation, bool) {
	i, ok := t.relIndex[strings.ToLower(name)]
	if !ok {
		return Relation{}, false
	}
	return t.Relations[i], true
}

// SubtypeNames returns the declared subtype names in order.
func (t *Type) SubtypeNames() []string {
	names := make([]string, len(t.Subtypes))
	for i, s := range t.Subtypes {
		names[i] = s.Name
	}
	return names
}

// descendants returns name plus everything below it, in declaration order.
func (t *Type) descendants(name string) []string {
	out := []string{name}
	for _, child := range t.children[strings.ToLower(name)] {
		out = append(out, t.descendants(child)...)
	}
	return out
}

// Schema is the loaded, validated type system.
type Schema struct {
	Types []*Type `yaml:"types" json:"types"`

	byName     map[string]*Type // lowercased concrete name
	bySubtype  map[string]*Type // lowercased subtype name -> owning concrete type
	subtypeIdx map[string]int   // lowercased subtype name -> index in owner's list
}

// Lookup returns the concrete type with the given name, case-insensitively.
func (s *Schema) Lookup(name string) (*Type, bool) {
	t, ok := s.byName[strings.ToLower(name)]
	return t, ok
}

// Concrete resolves a type tag, which may name a concrete type or any of its
// subtypes, to the owning concrete type. Node type tags resolve through
// here: Concrete("preprint") yields CreativeWork.
func (s *Schema) Concrete(name string) (*Type, bool) {
	key := strings.ToLower(name)
	if t, ok := s.bySubtype[key]; ok {
		return t, ok
	}
	t, ok := s.byName[key]
	return t, ok
}

// IsSubtype reports whether name is a declared subtype (as opposed to a
// concrete type without lineage).
func (s *Schema) IsSubtype(name string) bool {
	_, ok := s.bySubtype[strings.ToLower(name)]
	return ok
}

// Lineage returns the type names from name up to its concrete root, most
// specific first: Lineage("creator") yields [Creator Contributor
// AgentWorkRelation]. A concrete name is its own one-element lineage.
func (s *Schema) Lineage(name string) ([]string, bool) {
	key := strings.ToLower(name)

	if t, ok := s.byName[key]; ok {
		return []string{t.Name}, true
	}
	t, ok := s.bySubtype[key]
	if !ok {
		return nil, false
	}

	var names []string
	sub := t.Subtypes[s.subtypeIdx[key]]
	for {
		names = append(names, sub.Name)
		if sub.Parent == "" {
			break
		}
		sub = t.Subtypes[s.subtypeIdx[strings.ToLower(sub.Parent)]]
	}
	return append(names, t.Name), true
}

// AllowedSubtypeTags returns the discriminator tags admitted by a type name:
// every subtype when name is a concrete type, otherwise the named subtype
// plus all its descendants. Nil and false for unknown names and for types
// without a discriminator.
func (s *Schema) AllowedSubtypeTags(name string) ([]string, bool) {
	key := strings.ToLower(name)

	if t, ok := s.byName[key]; ok {
		if !t.HasSubtypes() {
			return nil, false
		}
		return tagsOf(t.SubtypeNames()), true
	}
	if t, ok := s.bySubtype[key]; ok {
		sub := t.Subtypes[s.subtypeIdx[key]]
		return tagsOf(t.descendants(sub.Name)), true
	}
	return nil, false
}

func tagsOf(names []string) []string {
	tags := make([]string, len(names))
	for i, n := range names {
		tags[i] = SubtypeTag(n)
	}
	return tags
}
