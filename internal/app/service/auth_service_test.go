package service

import (
	"context"
	"errors"
	"testing"

	"taskreg/internal/common"
	"taskreg/internal/common/security"
	"taskreg/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	digest, err := security.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return digest
}

func TestAuthenticateSuccess(t *testing.T) {
	users := newFakeUserRepo(&model.User{
		ID:             5,
		Name:           "Alice Silva",
		Username:       "alice",
		PasswordDigest: mustHash(t, "s3cret"),
		Active:         true,
		Role:           model.RoleUser,
	})
	authService := NewAuthService(users)

	identity, err := authService.Authenticate(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if identity.ID != 5 || identity.Username != "alice" || identity.Role != model.RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestAuthenticateUnknownAndInactiveAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo(&model.User{
		ID:             2,
		Username:       "bob",
		PasswordDigest: mustHash(t, "pw"),
		Active:         false,
		Role:           model.RoleUser,
	})
	authService := NewAuthService(users)

	_, errUnknown := authService.Authenticate(context.Background(), "nobody", "pw")
	_, errInactive := authService.Authenticate(context.Background(), "bob", "pw")

	if !errors.Is(errUnknown, common.ErrInvalidCredentials) {
		t.Fatalf("unknown username: want ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errInactive, common.ErrInvalidCredentials) {
		t.Fatalf("inactive account: want ErrInvalidCredentials, got %v", errInactive)
	}
	if errUnknown.Error() != errInactive.Error() {
		t.Fatalf("failures must be indistinguishable: %q vs %q", errUnknown, errInactive)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	users := newFakeUserRepo(&model.User{
		ID:             3,
		Username:       "carol",
		PasswordDigest: mustHash(t, "right"),
		Active:         true,
		Role:           model.RoleManager,
	})
	authService := NewAuthService(users)

	_, err := authService.Authenticate(context.Background(), "carol", "wrong")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateEmptyFields(t *testing.T) {
	authService := NewAuthService(newFakeUserRepo())
	for _, pair := range [][2]string{{"", "pw"}, {"alice", ""}, {"", ""}} {
		if _, err := authService.Authenticate(context.Background(), pair[0], pair[1]); !errors.Is(err, common.ErrValidation) {
			t.Fatalf("(%q, %q): want ErrValidation, got %v", pair[0], pair[1], err)
		}
	}
}

func TestAuthenticateStoreFailureIsNotACredentialError(t *testing.T) {
	storeErr := errors.New("connection refused")
	users := newFakeUserRepo()
	users.err = storeErr
	authService := NewAuthService(users)

	_, err := authService.Authenticate(context.Background(), "alice", "pw")
	if errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatal("data-layer failure must not map to invalid credentials")
	}
	if !errors.Is(err, storeErr) {
		t.Fatalf("want wrapped store error, got %v", err)
	}
}
