package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/mattclark/SHARE/pkg/errors"
)

//go:embed schema.yaml
var schemaYAML []byte

var defaultSchema = sync.OnceValue(func() *Schema {
	s, err := Load()
	if err != nil {
		panic(fmt.Sprintf("embedded schema is invalid: %v", err))
	}
	return s
})

// Default returns the embedded type system, loaded once.
func Default() *Schema {
	return defaultSchema()
}

// Load parses and validates the embedded schema document.
func Load() (*Schema, error) {
	return Parse(schemaYAML)
}

// Parse loads a schema from YAML, applying defaults (attribute column names,
// many-to-one FK columns) and validating the cross-type structure.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.WrapParse("yaml", "schema document", err)
	}
	if err := s.finalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) finalize() error {
	s.byName = make(map[string]*Type, len(s.Types))
	s.bySubtype = make(map[string]*Type)
	s.subtypeIdx = make(map[string]int)

	for _, t := range s.Types {
		if t.Name == "" || t.Table == "" {
			return schemaErr("type %q must have a name and a table", t.Name)
		}
		key := strings.ToLower(t.Name)
		if _, dup := s.byName[key]; dup {
			return schemaErr("duplicate type %q", t.Name)
		}
		s.byName[key] = t
	}

	for _, t := range s.Types {
		if err := s.indexSubtypes(t); err != nil {
			return err
		}
		if err := indexAttributes(t); err != nil {
			return err
		}
	}

	for _, t := range s.Types {
		if err := s.indexRelations(t); err != nil {
			return err
		}
	}
	for _, t := range s.Types {
		if err := s.checkInverses(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) indexSubtypes(t *Type) error {
	if t.HasSubtypes() && t.TypeColumn == "" {
		return schemaErr("type %q has subtypes but no type_column", t.Name)
	}
	if !t.HasSubtypes() && t.TypeColumn != "" {
		return schemaErr("type %q has a type_column but no subtypes", t.Name)
	}

	t.children = make(map[string][]string)
	local := make(map[string]bool, len(t.Subtypes))
	for i, sub := range t.Subtypes {
		key := strings.ToLower(sub.Name)
		if _, dup := s.bySubtype[key]; dup || local[key] {
			return schemaErr("duplicate subtype %q", sub.Name)
		}
		// A subtype sharing the concrete type's name (the generic variant)
		// is fine; any other clash with a concrete type is not.
		if _, clash := s.byName[key]; clash && key != strings.ToLower(t.Name) {
			return schemaErr("subtype %q collides with a concrete type", sub.Name)
		}
		local[key] = true
		s.bySubtype[key] = t
		s.subtypeIdx[key] = i
	}
	for _, sub := range t.Subtypes {
		if sub.Parent == "" {
			continue
		}
		parentKey := strings.ToLower(sub.Parent)
		if !local[parentKey] {
			return schemaErr("subtype %q of %q names unknown parent %q", sub.Name, t.Name, sub.Parent)
		}
		t.children[parentKey] = append(t.children[parentKey], sub.Name)
	}
	return nil
}

func indexAttributes(t *Type) error {
	t.attrIndex = make(map[string]int, len(t.Attributes))
	for i, a := range t.Attributes {
		if a.Name == "" {
			return schemaErr("type %q has an unnamed attribute", t.Name)
		}
		switch a.Type {
		case Boolean, String, Integer, DateTime, Object:
		default:
			return schemaErr("attribute %s.%s has unknown type %q", t.Name, a.Name, a.Type)
		}
		if a.Column == "" {
			t.Attributes[i].Column = a.Name
		}
		key := strings.ToLower(a.Name)
		if _, dup := t.attrIndex[key]; dup {
			return schemaErr("type %q declares attribute %q twice", t.Name, a.Name)
		}
		t.attrIndex[key] = i
	}
	return nil
}

func (s *Schema) indexRelations(t *Type) error {
	t.relIndex = make(map[string]int, len(t.Relations))
	for i, r := range t.Relations {
		if r.Name == "" {
			return schemaErr("type %q has an unnamed relation", t.Name)
		}
		if _, ok := s.byName[strings.ToLower(r.Target)]; !ok {
			return schemaErr("relation %s.%s targets unknown type %q", t.Name, r.Name, r.Target)
		}
		switch r.Kind {
		case ManyToOne:
			if r.Column == "" {
				t.Relations[i].Column = r.Name + "_id"
			}
		case OneToMany:
			if r.Inverse == "" {
				return schemaErr("one-to-many relation %s.%s needs an inverse", t.Name, r.Name)
			}
		case ManyToMany:
			through, ok := s.byName[strings.ToLower(r.Through)]
			if !ok {
				return schemaErr("many-to-many relation %s.%s names unknown through type %q", t.Name, r.Name, r.Through)
			}
			if !reachesType(through, t.Name) || !reachesType(through, r.Target) {
				return schemaErr("through type %q does not join %s and %s", r.Through, t.Name, r.Target)
			}
		default:
			return schemaErr("relation %s.%s has unknown kind %q", t.Name, r.Name, r.Kind)
		}
		key := strings.ToLower(r.Name)
		if _, dup := t.relIndex[key]; dup {
			return schemaErr("type %q declares relation %q twice", t.Name, r.Name)
		}
		t.relIndex[key] = i
	}
	return nil
}

// checkInverses verifies that paired relations agree: each side names the
// other and the kinds complement.
func (s *Schema) checkInverses(t *Type) error {
	for _, r := range t.Relations {
		if r.Inverse == "" || r.Kind == ManyToMany {
			continue
		}
		target := s.byName[strings.ToLower(r.Target)]
		back, ok := target.Relation(r.Inverse)
		if !ok {
			return schemaErr("relation %s.%s names inverse %q missing on %s", t.Name, r.Name, r.Inverse, target.Name)
		}
		if !strings.EqualFold(back.Target, t.Name) || !strings.EqualFold(back.Inverse, r.Name) {
			return schemaErr("relations %s.%s and %s.%s do not invert each other", t.Name, r.Name, target.Name, back.Name)
		}
		if (r.Kind == ManyToOne) == (back.Kind == ManyToOne) {
			return schemaErr("relations %s.%s and %s.%s have incompatible kinds", t.Name, r.Name, target.Name, back.Name)
		}
	}
	return nil
}

// reachesType reports whether the through type has a many-to-one relation
// targeting the named type.
func reachesType(through *Type, typeName string) bool {
	for _, r := range through.Relations {
		if r.Kind == ManyToOne && strings.EqualFold(r.Target, typeName) {
			return true
		}
	}
	return false
}

func schemaErr(format string, args ...any) error {
	return &errors.ValidationError{Field: "schema", Message: fmt.Sprintf(format, args...)}
}
