package errors_test

import (
	stderrors "errors"
	"fmt"

	"github.com/mattclark/SHARE/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "creative work",
		ID:       "4409",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Record not found")
	}

	// Output: Record not found
}

// Example_refError demonstrates malformed reference handling.
func Example_refError() {
	err := errors.NewRefError("Person;0012", "missing separator")

	// Malformed references degrade to "no match" rather than failing a run
	if errors.IsInvalidRef(err) {
		fmt.Println("Skipping node with malformed reference")
	}

	// Output: Skipping node with malformed reference
}

// Example_identifierError shows identifier rejection handling.
func Example_identifierError() {
	err := &errors.IdentifierError{
		URI:        "mailto:author@example.edu",
		Scheme:     "mailto",
		Disallowed: true,
	}

	switch {
	case errors.IsDisallowed(err):
		fmt.Println("Rejected by policy")
	case errors.IsUnparseable(err):
		fmt.Println("Rejected as unparseable")
	}

	// Output: Rejected by policy
}

// Example_wrapDatabase demonstrates wrapping store failures with context.
func Example_wrapDatabase() {
	base := errors.New("connection reset")
	err := errors.WrapDatabase("query", "share_workidentifier", base)

	var dbErr *errors.DatabaseError
	if stderrors.As(err, &dbErr) {
		fmt.Printf("table: %s\n", dbErr.Table)
	}

	// Output: table: share_workidentifier
}
