package security

import (
	"encoding/base64"
	"testing"
)

func TestGenerateSessionTokenEntropyAndUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		token, err := GenerateSessionToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		raw, err := base64.RawURLEncoding.DecodeString(token)
		if err != nil {
			t.Fatalf("token is not base64url: %v", err)
		}
		if len(raw) != sessionTokenBytes {
			t.Fatalf("expected %d raw bytes, got %d", sessionTokenBytes, len(raw))
		}
		if seen[token] {
			t.Fatalf("duplicate token on iteration %d", i)
		}
		seen[token] = true
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	digest, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "s3cret" {
		t.Fatal("digest must not be the plaintext")
	}
	if !CheckPasswordHash("s3cret", digest) {
		t.Fatal("correct password should verify")
	}
	if CheckPasswordHash("wrong", digest) {
		t.Fatal("wrong password must not verify")
	}
}
