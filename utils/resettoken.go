package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CreateResetToken generates a password-reset secret. The plain value is
// handed to the user exactly once; only the sha256 hash may be persisted.
func CreateResetToken() (plain, hashed string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(raw), hex.EncodeToString(sum[:]), nil
}

// HashResetToken recomputes the stored hash from a presented plain token.
// A token that is not valid hex can never match anything.
func HashResetToken(plain string) (string, error) {
	raw, err := hex.DecodeString(plain)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
