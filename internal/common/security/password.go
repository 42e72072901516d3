package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a one-way digest of the plaintext. Cost comes from
// configuration so tests can run at the bcrypt minimum.
func HashPassword(password string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored digest.
func CheckPasswordHash(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
