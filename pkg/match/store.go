package match

import (
	"context"
)

// RowMatch pairs a lookup result row with the node that produced it.
type RowMatch struct {
	NodeID    string
	Candidate Candidate
}

// SubjectScope narrows a taxonomy lookup: either the central taxonomy or a
// named source's custom taxonomy.
type SubjectScope struct {
	Central bool
	Source  string
}

// WorkRelationRow is one existing agent-work relation of a persisted work,
// with its agent alongside for name comparison.
type WorkRelationRow struct {
	Relation Candidate
	Agent    Candidate
}

// Store is the read-only record access the strategy passes run against. All
// methods take a context; implementations must never write.
type Store interface {
	// LookupByValues executes a built batched lookup and returns the
	// (node id, candidate) pairs it matched.
	LookupByValues(ctx context.Context, q LookupQuery) ([]RowMatch, error)

	// RecordsByIDs fetches candidates of one concrete type by primary key.
	RecordsByIDs(ctx context.Context, typeName string, ids []int64) ([]Candidate, error)

	// SubjectByURI and SubjectByName fetch a single subject within a scope,
	// failing with an error matching errors.ErrNotFound when absent.
	SubjectByURI(ctx context.Context, scope SubjectScope, uri string) (Candidate, error)
	SubjectByName(ctx context.Context, scope SubjectScope, name string) (Candidate, error)

	// CountAgentRelations counts a persisted work's existing agent
	// relations, for the fan-out ceiling.
	CountAgentRelations(ctx context.Context, workID int64) (int, error)

	// AgentRelationsForWork fetches a work's existing agent relations with
	// their agents.
	AgentRelationsForWork(ctx context.Context, workID int64) ([]WorkRelationRow, error)
}

// RefResolver resolves an opaque public id to its persisted record. A
// malformed id fails with an error matching errors.ErrInvalidRef; a
// well-formed id naming no record fails with errors.ErrNotFound.
type RefResolver interface {
	Resolve(ctx context.Context, ref string) (Candidate, error)
}
