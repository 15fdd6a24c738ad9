package store

import (
	"context"
	"strings"

	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/match"
	"github.com/mattclark/SHARE/pkg/obfuscate"
)

// Resolver turns opaque public ids back into persisted records: it decodes
// the id, maps the embedded type name onto its concrete type, and fetches
// the record.
type Resolver struct {
	store *Store
}

var _ match.RefResolver = (*Resolver)(nil)

// NewResolver builds a Resolver over a store.
func NewResolver(s *Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve decodes ref and fetches its record. A malformed ref or one naming
// an unknown type fails with an error matching errors.ErrInvalidRef; a
// well-formed ref naming no record fails with errors.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, ref string) (match.Candidate, error) {
	typeName, pk, err := obfuscate.Decode(ref)
	if err != nil {
		return match.Candidate{}, err
	}
	typ, ok := r.store.schema.Concrete(typeName)
	if !ok {
		return match.Candidate{}, &errors.RefError{Ref: ref, Message: "unknown type " + typeName}
	}

	records, err := r.store.RecordsByIDs(ctx, typ.Name, []int64{pk})
	if err != nil {
		return match.Candidate{}, err
	}
	if len(records) == 0 {
		return match.Candidate{}, &errors.NotFoundError{Resource: strings.ToLower(typ.Name), ID: ref}
	}
	return records[0], nil
}

// Ref renders the public id of a candidate, preferring its subtype name so
// ids survive round trips through Resolve.
func Ref(c match.Candidate) string {
	name := c.Subtype
	if name == "" {
		name = strings.ToLower(c.Type)
	}
	return obfuscate.Encode(name, c.ID)
}
