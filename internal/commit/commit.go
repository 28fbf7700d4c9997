// Package commit holds the commitment primitives: salt generation and the
// one-way digest binding a canonical date string to a salt. The digest reveals
// nothing about the date without the salt; a fresh salt per proof makes
// repeated commitments to the same date unlinkable.
package commit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// SaltSize is the salt length in bytes (256 bits).
const SaltSize = 32

// NewSalt draws a fresh salt from the given random source and returns it
// hex-encoded. The source must be cryptographically secure (crypto/rand in
// production). A short read is an infrastructure failure and aborts the
// operation; there is no weak-salt fallback.
func NewSalt(random io.Reader) (string, error) {
	b := make([]byte, SaltSize)
	if _, err := io.ReadFull(random, b); err != nil {
		return "", fmt.Errorf("draw salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Digest computes the hex-encoded SHA-256 commitment over the canonical
// YYYY-MM-DD date string concatenated with the hex-encoded salt. The salt is
// committed in its hex form, exactly as it appears in the private record, so
// an out-of-band disclosure round-trips to the same digest.
func Digest(dateString, saltHex string) string {
	sum := sha256.Sum256([]byte(dateString + saltHex))
	return hex.EncodeToString(sum[:])
}
