package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Password derivation parameters. Changing any of these invalidates every
// stored hash, so they are fixed constants rather than configuration.
const (
	pbkdf2Iterations = 1000
	pbkdf2KeyLen     = 64
	saltBytes        = 16
)

// NewSalt returns a fresh random hex-encoded salt.
func NewSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives a hex-encoded PBKDF2-SHA256 hash of (password, salt).
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword re-derives the hash with the stored salt and compares in
// constant time.
func VerifyPassword(password, salt, hash string) bool {
	derived := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(hash)) == 1
}
