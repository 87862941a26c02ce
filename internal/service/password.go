package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const saltBytes = 16

// hashPassword derives the stored credential pair for a new password: a
// random hex salt and the hex SHA-256 digest of salt+password.
func hashPassword(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to draw password salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:]), salt, nil
}

// checkPassword verifies a login attempt against the stored pair in constant
// time.
func checkPassword(password, salt, hash string) bool {
	sum := sha256.Sum256([]byte(salt + password))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) == 1
}
