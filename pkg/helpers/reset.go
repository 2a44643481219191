package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewResetSecret generates a one-time password-reset secret. The plaintext
// goes to the user by email; only the sha256 digest is ever stored.
func NewResetSecret() (plain string, digest string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	plain = hex.EncodeToString(b)
	return plain, HashResetSecret(plain), nil
}

// HashResetSecret maps a plaintext reset secret to its stored form.
func HashResetSecret(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
