// Package obfuscate encodes (type name, primary key) pairs into opaque
// public ids and decodes them back. The id hides the sequential key behind
// an invertible bit permutation; it is not a secret, only unguessable enough
// that consumers stop treating ids as counters.
//
// The wire form is `<TypeName>:XXXX-XXXX-XXXX-XXXX` with uppercase hex.
package obfuscate

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/mattclark/SHARE/pkg/errors"
)

const (
	refMask   uint64 = 0x9E3779B97F4A7C15
	refRotate        = 17
	hexDigits        = 16
)

// Encode renders a persisted record's public id. The primary key must be
// positive; Decode rejects anything else.
func Encode(typeName string, pk int64) string {
	mixed := bits.RotateLeft64(uint64(pk), refRotate) ^ refMask
	hex := fmt.Sprintf("%016X", mixed)
	return fmt.Sprintf("%s:%s-%s-%s-%s", typeName, hex[0:4], hex[4:8], hex[8:12], hex[12:16])
}

// Decode parses a public id back into its type name and primary key. The
// dashes are cosmetic and optional on input. Any malformed id fails with an
// error matching errors.ErrInvalidRef; Decode never panics.
func Decode(id string) (string, int64, error) {
	typeName, rest, found := strings.Cut(id, ":")
	if !found || typeName == "" {
		return "", 0, &errors.RefError{Ref: id, Message: "missing type prefix"}
	}

	hex := strings.ReplaceAll(rest, "-", "")
	if len(hex) != hexDigits {
		return "", 0, &errors.RefError{Ref: id, Message: "key must be 16 hex digits"}
	}
	mixed, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return "", 0, &errors.RefError{Ref: id, Message: "key is not hexadecimal"}
	}

	pk := int64(bits.RotateLeft64(mixed^refMask, -refRotate))
	if pk <= 0 {
		return "", 0, &errors.RefError{Ref: id, Message: "key decodes out of range"}
	}
	return typeName, pk, nil
}
