package commit

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveSigningKey derives the 32-byte admin token-signing key from the server
// master secret using HKDF-SHA256.
func DeriveSigningKey(masterSecret []byte) ([]byte, error) {
	h := hkdf.New(sha256.New, masterSecret, nil, []byte("admin-token-signing"))
	out := make([]byte, 32)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}
