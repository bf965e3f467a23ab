// Package token issues single-use opaque tokens for email verification and password reset.
// Only the sha256 digest of a token is ever stored; the raw value travels in the email link.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const size = 32

// New returns the raw token to hand to the user and the digest to persist.
func New() (raw, digest string, err error) {
	buf := make([]byte, size)

	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	raw = hex.EncodeToString(buf)

	return raw, Digest(raw), nil
}

func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}
