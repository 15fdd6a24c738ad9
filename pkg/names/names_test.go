package names

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ParsedName
	}{
		{
			name: "plain",
			raw:  "Jane Doe",
			want: ParsedName{First: "Jane", Last: "Doe", Full: "Jane Doe"},
		},
		{
			name: "middle names",
			raw:  "Jane Quinn van Doe",
			want: ParsedName{First: "Jane", Last: "Doe", Full: "Jane Quinn van Doe"},
		},
		{
			name: "comma form",
			raw:  "Curie, Marie",
			want: ParsedName{First: "Marie", Last: "Curie", Full: "Marie Curie"},
		},
		{
			name: "comma form with middle",
			raw:  "Doe, Jane Q.",
			want: ParsedName{First: "Jane", Last: "Doe", Full: "Jane Q. Doe"},
		},
		{
			name: "comma with nothing after",
			raw:  "Doe,",
			want: ParsedName{Last: "Doe", Full: "Doe"},
		},
		{
			name: "single token",
			raw:  "Aristotle",
			want: ParsedName{Last: "Aristotle", Full: "Aristotle"},
		},
		{
			name: "whitespace collapsed",
			raw:  "  Jane \t  Doe  ",
			want: ParsedName{First: "Jane", Last: "Doe", Full: "Jane Doe"},
		},
		{
			name: "empty",
			raw:  "   ",
			want: ParsedName{},
		},
		{
			name: "initial only",
			raw:  "J. Doe",
			want: ParsedName{First: "J.", Last: "Doe", Full: "J. Doe"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestParseUnicodeNormalization(t *testing.T) {
	// "é" written as 'e' + combining acute vs the precomposed code point.
	decomposed := "Rémy Martin"
	precomposed := "Rémy Martin"

	a, b := Parse(decomposed), Parse(precomposed)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("NFC forms should parse identically (-decomposed +precomposed):\n%s", diff)
	}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestKeys(t *testing.T) {
	jane := Parse("Jane Doe")
	upper := Parse("JANE DOE")
	initial := Parse("J. Doe")
	middle := Parse("Jane Q. Doe")
	comma := Parse("Doe, Jane")

	if jane.Key() != upper.Key() {
		t.Error("Key comparison should be case-insensitive")
	}
	if jane.Key() == middle.Key() {
		t.Error("different full names must have different Keys")
	}
	if jane.PairKey() != middle.PairKey() {
		t.Error("same (first, last) pair should share a PairKey")
	}
	if jane.PairKey() != comma.PairKey() {
		t.Error("comma form should share a PairKey with the plain form")
	}
	if jane.InitialKey() != initial.InitialKey() {
		t.Error("\"J. Doe\" should share an InitialKey with \"Jane Doe\"")
	}
	if jane.PairKey() == initial.PairKey() {
		t.Error("\"J.\" is not the first name \"Jane\"")
	}
}

func TestKeySeparatorPreventsCollisions(t *testing.T) {
	// Without a separator, First="AB" Last="C" would collide with
	// First="A" Last="BC".
	a := ParsedName{First: "AB", Last: "C"}
	b := ParsedName{First: "A", Last: "BC"}
	if a.PairKey() == b.PairKey() {
		t.Error("PairKey must separate components")
	}
}

func TestEmpty(t *testing.T) {
	if !Parse("").Empty() {
		t.Error("blank input should parse to an empty name")
	}
	if Parse("Doe").Empty() {
		t.Error("a bare surname is not empty")
	}
}
