package share

import (
	"github.com/mattclark/SHARE/pkg/errors"
	"github.com/mattclark/SHARE/pkg/identifiers"
	"github.com/mattclark/SHARE/pkg/match"
	"github.com/mattclark/SHARE/pkg/schema"
)

// Option is a function that configures a Client instance.
type Option func(*options) error

// options holds the configuration built up by applying Options.
type options struct {
	databaseURL       string
	source            string
	maxNameLength     int
	maxAgentRelations int
	policy            identifiers.Policy
	schema            *schema.Schema
	store             match.Store
	resolver          match.RefResolver
}

// defaultOptions returns the configuration used when no options are given.
func defaultOptions() *options {
	return &options{
		policy: identifiers.DefaultPolicy(),
	}
}

// apply runs the given options against the client's configuration.
func (c *client) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.options); err != nil {
			return err
		}
	}
	return nil
}

// WithDatabaseURL configures the Postgres connection string. The connection
// is opened lazily on the first Resolve call.
func WithDatabaseURL(url string) Option {
	return func(o *options) error {
		o.databaseURL = url
		return nil
	}
}

// WithSource names the metadata source whose custom subject taxonomy scopes
// subject matching. Without it only the central taxonomy is consulted.
func WithSource(name string) Option {
	return func(o *options) error {
		o.source = name
		return nil
	}
}

// WithMaxNameLength overrides the name length ceiling used when comparing
// cited names during fuzzy relation matching.
func WithMaxNameLength(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return &errors.ValidationError{Field: "maxNameLength", Value: n, Message: "must be positive"}
		}
		o.maxNameLength = n
		return nil
	}
}

// WithMaxAgentRelations overrides the per-work relation count above which
// fuzzy relation matching skips a work.
func WithMaxAgentRelations(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return &errors.ValidationError{Field: "maxAgentRelations", Value: n, Message: "must be positive"}
		}
		o.maxAgentRelations = n
		return nil
	}
}

// WithPolicy substitutes the work-identifier acceptance policy applied
// during normalization.
func WithPolicy(p identifiers.Policy) Option {
	return func(o *options) error {
		o.policy = p
		return nil
	}
}

// WithSchema substitutes the type system used for validation and matching.
func WithSchema(s *schema.Schema) Option {
	return func(o *options) error {
		if s == nil {
			return &errors.ValidationError{Field: "schema", Message: "must not be nil"}
		}
		o.schema = s
		return nil
	}
}

// WithStore injects a pre-built store and ref resolver instead of connecting
// to a database. Useful for testing and for callers that manage their own
// connection pool.
func WithStore(st match.Store, r match.RefResolver) Option {
	return func(o *options) error {
		if st == nil || r == nil {
			return &errors.ValidationError{Field: "store", Message: "store and resolver must both be set"}
		}
		o.store = st
		o.resolver = r
		return nil
	}
}
