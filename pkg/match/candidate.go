// Package match decides which graph nodes describe already-persisted
// records. It holds the match set built up across passes, the batched
// lookup query builder, the relation-name comparator, and the strategy
// passes an orchestrator runs in a fixed order.
package match

import (
	"strings"

	"github.com/mattclark/SHARE/pkg/schema"
)

// Candidate is one persisted record considered as a possible match: its
// numeric primary key, concrete type, optional subtype tag, and the scanned
// column values needed for comparison. Beyond these it is opaque; the
// downstream merge stage decides what to do with it.
type Candidate struct {
	ID      int64
	Type    string         // concrete type name, e.g. "CreativeWork"
	Subtype string         // bare lowercase subtype, e.g. "preprint"; empty when undiscriminated
	Fields  map[string]any // column name -> scanned value
}

// Field returns a scanned column value.
func (c Candidate) Field(name string) (any, bool) {
	v, ok := c.Fields[name]
	return v, ok
}

// StringField returns a column value as a string, or "" when absent, NULL,
// or not textual.
func (c Candidate) StringField(name string) string {
	if v, ok := c.Fields[name].(string); ok {
		return v
	}
	return ""
}

// Int64Field returns a numeric column value. Integer widths vary by column
// type, so all are accepted.
func (c Candidate) Int64Field(name string) (int64, bool) {
	switch v := c.Fields[name].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// key identifies a candidate for set membership.
func (c Candidate) key() candidateKey {
	return candidateKey{Type: strings.ToLower(c.Type), ID: c.ID}
}

type candidateKey struct {
	Type string
	ID   int64
}

// SubtypeFromTag strips the discriminator prefix from a stored type tag:
// "share.preprint" becomes "preprint". Tags without the prefix pass through
// lowercased.
func SubtypeFromTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(tag, schema.TagPrefix))
}
