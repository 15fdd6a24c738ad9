package appcontext

import (
	"github.com/rs/zerolog"

	share "github.com/mattclark/SHARE"
	"github.com/mattclark/SHARE/pkg/schema"
)

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example usage:
//
//	mock := &appcontext.Mock{
//	    ShareFunc: func() (share.Client, error) {
//	        return testClient, nil
//	    },
//	}
//	cmd := resolve.NewCommand(mock)
//	// ... test command
type Mock struct {
	ShareFunc            func() (share.Client, error)
	ShareWithOptionsFunc func(...share.Option) (share.Client, error)
	SchemaFunc           func() *schema.Schema
	LoggerFunc           func() *zerolog.Logger
	OutputFormatFunc     func() string
	VersionFunc          func() string
	CommitFunc           func() string
	DateFunc             func() string
	BuiltByFunc          func() string
}

// Share returns a client using the mock function or nil.
func (m *Mock) Share() (share.Client, error) {
	if m.ShareFunc != nil {
		return m.ShareFunc()
	}
	return nil, nil
}

// ShareWithOptions returns a client using the mock function or nil.
func (m *Mock) ShareWithOptions(opts ...share.Option) (share.Client, error) {
	if m.ShareWithOptionsFunc != nil {
		return m.ShareWithOptionsFunc(opts...)
	}
	return nil, nil
}

// Schema returns a schema using the mock function or the default schema.
func (m *Mock) Schema() *schema.Schema {
	if m.SchemaFunc != nil {
		return m.SchemaFunc()
	}
	return schema.Default()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}
