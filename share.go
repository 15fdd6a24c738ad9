// Package share provides the main entry point for the SHARE scholarly
// metadata disambiguation system. It offers a high-level interface for
// normalizing metadata graphs and resolving their nodes against records
// already persisted in a SHARE database.
//
// A metadata graph arrives as a set of typed nodes (works, agents,
// identifiers, relations) connected by relations. The client cleans the
// graph's identifiers into canonical form, then walks the graph through a
// fixed sequence of matching passes, from exact identifier equality down to
// component-wise name comparison, recording which database record each node
// refers to.
//
// Example usage:
//
//	// Create a client backed by a SHARE database
//	client, err := share.New(
//	    share.WithDatabaseURL("postgres://share@localhost/share"),
//	    share.WithSource("org.example.repo"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Parse a graph and resolve it
//	g, err := graph.Parse(payload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := client.Resolve(ctx, g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Inspect the matches
//	for _, nodeID := range result.Matches.NodeIDs() {
//	    c, _ := result.Matches.One(nodeID)
//	    fmt.Printf("%s -> %s %d\n", nodeID, c.Type, c.ID)
//	}
package share

import (
	"context"
	"sync"

	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/graph"
	"github.com/mattclark/SHARE/pkg/identifiers"
	"github.com/mattclark/SHARE/pkg/match"
	"github.com/mattclark/SHARE/pkg/schema"
	"github.com/mattclark/SHARE/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Normalizer canonicalizes the identifier nodes of a graph in place.
type Normalizer interface {
	Normalize(ctx context.Context, g *graph.Graph) identifiers.Report
}

// Resolver normalizes a graph and matches its nodes against stored records.
type Resolver interface {
	Resolve(ctx context.Context, g *graph.Graph) (*Result, error)
}

// Client is the top-level entry point for graph disambiguation.
type Client interface {

	// Normalizer canonicalizes graph identifiers
	Normalizer

	// Resolver runs the full normalize-and-match sequence
	Resolver

	// Schema returns the type system graphs are validated against
	Schema() *schema.Schema

	// Close releases any database resources held by the client
	Close() error
}

// Result is the outcome of one Resolve run.
type Result struct {
	// Report summarizes the identifier normalization pass.
	Report identifiers.Report

	// Matches maps graph node ids to the records they resolved to.
	Matches *match.Set
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// schema and normalizer are fixed at construction
	schema     *schema.Schema
	normalizer *identifiers.Normalizer

	// database-backed state, connected lazily on first Resolve
	mu       sync.RWMutex
	store    match.Store
	resolver match.RefResolver
	matcher  *match.Matcher
	closer   func()
}

// New creates a new Client instance with the given options.
//
// The database connection is established lazily on the first Resolve call,
// so a client built without database options can still Normalize graphs.
func New(opts ...Option) (Client, error) {
	c := &client{
		options: defaultOptions(),
	}

	if err := c.apply(opts...); err != nil {
		return nil, err
	}

	c.schema = c.options.schema
	if c.schema == nil {
		c.schema = schema.Default()
	}
	c.normalizer = identifiers.NewNormalizer(c.options.policy)

	// Use an injected store when provided
	if c.options.store != nil {
		c.store = c.options.store
		c.resolver = c.options.resolver
		c.matcher = c.buildMatcher()
	}

	return c, nil
}

// Normalize rewrites the graph's identifier nodes to canonical form and
// prunes the ones whose identifiers are unparseable or disallowed. It never
// touches the database.
func (c *client) Normalize(ctx context.Context, g *graph.Graph) identifiers.Report {
	return c.normalizer.NormalizeGraph(ctx, g)
}

// Resolve normalizes the graph, then matches its nodes against the database
// in a fixed pass order. Nodes left unmatched are the ones a caller should
// treat as new records.
func (c *client) Resolve(ctx context.Context, g *graph.Graph) (*Result, error) {
	report := c.normalizer.NormalizeGraph(ctx, g)

	matcher, err := c.ensureMatcher(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := matcher.Resolve(ctx, g)
	if err != nil {
		return nil, err
	}

	return &Result{Report: report, Matches: matches}, nil
}

// Schema returns the type system graphs are validated against.
func (c *client) Schema() *schema.Schema {
	return c.schema
}

// Close releases the database connection, if one was opened.
func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
	c.store = nil
	c.resolver = nil
	c.matcher = nil
	return nil
}

// ensureMatcher returns the matcher, connecting to the database on first
// use. This is thread-safe and ensures only one connection pool is created.
func (c *client) ensureMatcher(ctx context.Context) (*match.Matcher, error) {
	c.mu.RLock()
	if c.matcher != nil {
		m := c.matcher
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.matcher != nil {
		return c.matcher, nil
	}

	if c.options.databaseURL == "" {
		return nil, errors.NewConfigError("database", "no database configured: set SHARE_DATABASE_URL or use WithDatabaseURL", nil)
	}

	st, err := store.Connect(ctx, c.options.databaseURL, store.WithSchema(c.schema))
	if err != nil {
		return nil, err
	}

	c.store = st
	c.resolver = store.NewResolver(st)
	c.closer = st.Close
	c.matcher = c.buildMatcher()
	return c.matcher, nil
}

// buildMatcher constructs the matcher from the configured store and options.
func (c *client) buildMatcher() *match.Matcher {
	opts := []match.Option{match.WithSchema(c.schema)}
	if c.options.source != "" {
		opts = append(opts, match.WithSource(c.options.source))
	}
	if c.options.maxNameLength > 0 {
		opts = append(opts, match.WithMaxNameLength(c.options.maxNameLength))
	}
	if c.options.maxAgentRelations > 0 {
		opts = append(opts, match.WithMaxAgentRelations(c.options.maxAgentRelations))
	}
	return match.NewMatcher(c.store, c.resolver, opts...)
}
