package schema

import (
	"testing"

	"github.com/mattclark/SHARE/internal/appcontext"
	"github.com/mattclark/SHARE/pkg/errors"
)

func TestNewCommand(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})

	if cmd.Use != "schema" {
		t.Errorf("Use = %q, want schema", cmd.Use)
	}

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	if !subcommands["show"] {
		t.Error("missing show subcommand")
	}
}

func TestRunShowUnknownType(t *testing.T) {
	cmd := NewShowCommand(&appcontext.Mock{})

	err := cmd.RunE(cmd, []string{"gadget"})
	if !errors.IsNotFound(err) {
		t.Errorf("show gadget error = %v, want not found", err)
	}
	if !cmd.SilenceUsage {
		t.Error("SilenceUsage not set for unknown type")
	}
}
