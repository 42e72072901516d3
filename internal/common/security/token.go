package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const sessionTokenBytes = 32

// GenerateSessionToken returns an unguessable opaque token. 32 bytes of
// crypto/rand output, well above the 128-bit floor a bearer credential needs.
func GenerateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("security.GenerateSessionToken: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
