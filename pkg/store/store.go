// Package store reads persisted records from Postgres for the matching
// passes. It is strictly read-only: resolution decides what a graph node
// refers to, it never writes anything back.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/logging"
	"github.com/mattclark/SHARE/pkg/match"
	"github.com/mattclark/SHARE/pkg/schema"
)

// Querier is the slice of pgxpool.Pool the store needs. Tests substitute
// fakes; everything else passes the real pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Querier = (*pgxpool.Pool)(nil)

// Store implements match.Store over a Postgres connection.
type Store struct {
	db     Querier
	schema *schema.Schema
	closer func()
}

var _ match.Store = (*Store)(nil)

// Option adjusts a Store.
type Option func(*Store)

// WithSchema substitutes the schema used to locate tables and columns.
func WithSchema(sc *schema.Schema) Option {
	return func(s *Store) { s.schema = sc }
}

// New wraps an existing connection. Close is a no-op; the caller keeps
// ownership of the connection.
func New(db Querier, opts ...Option) *Store {
	s := &Store{db: db, schema: schema.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect opens a pgx pool for the given URL, verifies it, and wraps it.
// Close releases the pool.
func Connect(ctx context.Context, url string, opts ...Option) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.WrapDatabase("parse config", "", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.WrapDatabase("connect", "", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.WrapDatabase("ping", "", err)
	}
	logging.Ctx(ctx).Debug().Str("database", cfg.ConnConfig.Database).Msg("store connected")

	s := New(pool, opts...)
	s.closer = pool.Close
	return s, nil
}

// Close releases the pool when the store owns one.
func (s *Store) Close() {
	if s.closer != nil {
		s.closer()
	}
}

// LookupByValues runs a built batched lookup and pairs each hit with the
// node that produced it.
func (s *Store) LookupByValues(ctx context.Context, q match.LookupQuery) ([]match.RowMatch, error) {
	typ, ok := s.schema.Lookup(q.TypeName)
	if !ok {
		return nil, &errors.ValidationError{Field: "type", Value: q.TypeName, Message: "unknown type"}
	}

	rows, err := s.db.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, errors.WrapDatabase("lookup", typ.Table, err)
	}
	defer rows.Close()

	var out []match.RowMatch
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.WrapDatabase("scan", typ.Table, err)
		}
		descs := rows.FieldDescriptions()
		if len(values) < 2 {
			return nil, errors.WrapDatabase("scan", typ.Table,
				fmt.Errorf("lookup row has %d columns, want node_id plus record", len(values)))
		}
		nodeID, ok := values[0].(string)
		if !ok {
			return nil, errors.WrapDatabase("scan", typ.Table,
				fmt.Errorf("lookup node_id is %T, want string", values[0]))
		}
		out = append(out, match.RowMatch{
			NodeID:    nodeID,
			Candidate: s.candidateFrom(typ, descs[1:], values[1:]),
		})
	}
	return out, rows.Err()
}

// RecordsByIDs fetches whole records of one concrete type by primary key.
func (s *Store) RecordsByIDs(ctx context.Context, typeName string, ids []int64) ([]match.Candidate, error) {
	typ, ok := s.schema.Lookup(typeName)
	if !ok {
		return nil, &errors.ValidationError{Field: "type", Value: typeName, Message: "unknown type"}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	sql := fmt.Sprintf(`SELECT * FROM %s WHERE id = ANY($1::bigint[]) ORDER BY id`, typ.Table)
	rows, err := s.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, errors.WrapDatabase("fetch", typ.Table, err)
	}
	defer rows.Close()

	var out []match.Candidate
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.WrapDatabase("scan", typ.Table, err)
		}
		out = append(out, s.candidateFrom(typ, rows.FieldDescriptions(), values))
	}
	return out, rows.Err()
}

// SubjectByURI fetches the first subject with the given URI within a scope.
func (s *Store) SubjectByURI(ctx context.Context, scope match.SubjectScope, uri string) (match.Candidate, error) {
	return s.subjectBy(ctx, scope, "uri", uri)
}

// SubjectByName fetches the first subject with the given name within a scope.
func (s *Store) SubjectByName(ctx context.Context, scope match.SubjectScope, name string) (match.Candidate, error) {
	return s.subjectBy(ctx, scope, "name", name)
}

func (s *Store) subjectBy(ctx context.Context, scope match.SubjectScope, column, value string) (match.Candidate, error) {
	typ, ok := s.schema.Lookup("Subject")
	if !ok {
		return match.Candidate{}, &errors.ValidationError{Field: "type", Value: "Subject", Message: "unknown type"}
	}

	var (
		sql  string
		args []any
	)
	if scope.Central {
		sql = fmt.Sprintf(`SELECT s.* FROM %s s WHERE s.%s = $1 AND s.central_synonym_id IS NULL ORDER BY s.id LIMIT 1`,
			typ.Table, column)
		args = []any{value}
	} else {
		sql = fmt.Sprintf(`SELECT s.* FROM %s s
JOIN share_subjecttaxonomy t ON t.id = s.taxonomy_id
JOIN share_source src ON src.id = t.source_id
WHERE s.%s = $1 AND src.name = $2
ORDER BY s.id LIMIT 1`, typ.Table, column)
		args = []any{value, scope.Source}
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return match.Candidate{}, errors.WrapDatabase("lookup", typ.Table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return match.Candidate{}, errors.WrapDatabase("lookup", typ.Table, err)
		}
		return match.Candidate{}, &errors.NotFoundError{Resource: "subject", ID: value}
	}
	values, err := rows.Values()
	if err != nil {
		return match.Candidate{}, errors.WrapDatabase("scan", typ.Table, err)
	}
	return s.candidateFrom(typ, rows.FieldDescriptions(), values), rows.Err()
}

// CountAgentRelations counts a work's existing agent relations.
func (s *Store) CountAgentRelations(ctx context.Context, workID int64) (int, error) {
	rows, err := s.db.Query(ctx,
		`SELECT COUNT(*) FROM share_agentworkrelation WHERE creative_work_id = $1`, workID)
	if err != nil {
		return 0, errors.WrapDatabase("count", "share_agentworkrelation", err)
	}
	defer rows.Close()

	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, errors.WrapDatabase("scan", "share_agentworkrelation", err)
		}
	}
	return int(count), rows.Err()
}

// AgentRelationsForWork fetches a work's existing agent relations with their
// agents, lowest relation id first.
func (s *Store) AgentRelationsForWork(ctx context.Context, workID int64) ([]match.WorkRelationRow, error) {
	rows, err := s.db.Query(ctx, `SELECT r.id, r.type, r.cited_as, r.order_cited, r.agent_id, a.type, a.name
FROM share_agentworkrelation r
JOIN share_agent a ON a.id = r.agent_id
WHERE r.creative_work_id = $1
ORDER BY r.id`, workID)
	if err != nil {
		return nil, errors.WrapDatabase("fetch", "share_agentworkrelation", err)
	}
	defer rows.Close()

	var out []match.WorkRelationRow
	for rows.Next() {
		var (
			relID      int64
			relType    string
			citedAs    *string
			orderCited *int32
			agentID    int64
			agentType  string
			agentName  *string
		)
		if err := rows.Scan(&relID, &relType, &citedAs, &orderCited, &agentID, &agentType, &agentName); err != nil {
			return nil, errors.WrapDatabase("scan", "share_agentworkrelation", err)
		}

		relation := match.Candidate{
			ID:      relID,
			Type:    "AgentWorkRelation",
			Subtype: match.SubtypeFromTag(relType),
			Fields:  map[string]any{"type": relType, "agent_id": agentID},
		}
		if citedAs != nil {
			relation.Fields["cited_as"] = *citedAs
		}
		if orderCited != nil {
			relation.Fields["order_cited"] = *orderCited
		}
		agent := match.Candidate{
			ID:      agentID,
			Type:    "Agent",
			Subtype: match.SubtypeFromTag(agentType),
			Fields:  map[string]any{"type": agentType},
		}
		if agentName != nil {
			agent.Fields["name"] = *agentName
		}
		out = append(out, match.WorkRelationRow{Relation: relation, Agent: agent})
	}
	return out, rows.Err()
}

// candidateFrom builds a Candidate from a scanned record row.
func (s *Store) candidateFrom(typ *schema.Type, descs []pgconn.FieldDescription, values []any) match.Candidate {
	c := match.Candidate{Type: typ.Name, Fields: make(map[string]any, len(values))}
	for i, d := range descs {
		if i >= len(values) {
			break
		}
		v := values[i]
		c.Fields[d.Name] = v
		switch {
		case d.Name == "id":
			if id, ok := asInt64(v); ok {
				c.ID = id
			}
		case typ.TypeColumn != "" && d.Name == typ.TypeColumn:
			if tag, ok := v.(string); ok {
				c.Subtype = match.SubtypeFromTag(tag)
			}
		}
	}
	return c
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
