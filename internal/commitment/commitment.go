// Package commitment implements the content-addressing scheme: a canonical
// text maps to a fixed-length digest any verifier can recompute from the
// text alone. No key, no randomness.
package commitment

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"truetrace/internal/errors"
)

// ErrInvalidEncoding is returned when the payload is not valid UTF-8. QR
// payloads are text by contract; anything else cannot have been produced
// by the record model.
var ErrInvalidEncoding = errors.New("payload is not valid UTF-8")

// Digest hashes canonical text to a 64-character lowercase hex SHA-256
// commitment. The input is treated as raw bytes: no trimming, no
// normalization. Any canonicalization belongs in the record model, never
// here, or a verifier's recomputed hash would not match the documented
// canonical text.
func Digest(canonicalText string) (string, error) {
	if !utf8.ValidString(canonicalText) {
		return "", errors.WithStack(ErrInvalidEncoding)
	}

	sum := sha256.Sum256([]byte(canonicalText))

	return hex.EncodeToString(sum[:]), nil
}

// Equal compares two commitments case-insensitively. This is an integrity
// check against a public value, not a secret comparison; constant time is
// not required.
func Equal(a, b string) bool {
	return strings.EqualFold(a, b)
}
