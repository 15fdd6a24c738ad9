// Package names parses raw human-name strings into comparable components.
// Comparison is always by component equality, never by string distance, so
// two names either share a component or they do not.
package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const keySep = "\x1f"

// ParsedName is the comparable decomposition of a raw name string. Full is
// the canonical rendering: Unicode NFC, whitespace collapsed, and comma forms
// ("Last, First") reordered to "First … Last".
type ParsedName struct {
	First string
	Last  string
	Full  string
}

// Parse decomposes a raw name. It is pure; the same input always yields the
// same components.
//
// A comma splits surname from given names ("Curie, Marie" and "Marie Curie"
// parse identically). Without a comma, the first whitespace token is the
// given name and the final token the surname. A single token is a bare
// surname.
func Parse(raw string) ParsedName {
	s := collapse(norm.NFC.String(raw))
	if s == "" {
		return ParsedName{}
	}

	if i := strings.Index(s, ","); i >= 0 {
		last := collapse(s[:i])
		given := collapse(s[i+1:])
		n := ParsedName{Last: last}
		if given == "" {
			n.Full = last
			return n
		}
		n.First = strings.Fields(given)[0]
		n.Full = given + " " + last
		return n
	}

	fields := strings.Fields(s)
	if len(fields) == 1 {
		return ParsedName{Last: fields[0], Full: fields[0]}
	}
	return ParsedName{
		First: fields[0],
		Last:  fields[len(fields)-1],
		Full:  s,
	}
}

// Empty reports whether no name was parsed at all.
func (n ParsedName) Empty() bool {
	return n.Full == ""
}

// Key is the case-insensitive full-name comparison key.
func (n ParsedName) Key() string {
	return strings.ToLower(n.Full)
}

// PairKey is the case-insensitive (first, last) comparison key.
func (n ParsedName) PairKey() string {
	return strings.ToLower(n.First) + keySep + strings.ToLower(n.Last)
}

// InitialKey is the case-insensitive (first initial, last) comparison key.
// "J. Doe" and "Jane Doe" share an InitialKey.
func (n ParsedName) InitialKey() string {
	initial := ""
	if n.First != "" {
		initial = strings.ToLower(string([]rune(n.First)[0]))
	}
	return initial + keySep + strings.ToLower(n.Last)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
