package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"taskreg/internal/common"
	"taskreg/internal/common/security"
	"taskreg/internal/domain/model"
	"taskreg/internal/domain/repository"
)

// AuthService resolves submitted credentials into a sanitized identity. It
// never touches sessions; that is SessionService's job.
type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate verifies a username/password pair against the active user
// set. Unknown usernames, inactive accounts and wrong passwords all fail
// with common.ErrInvalidCredentials; the distinction exists only in the
// server log, never in the response.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (model.Identity, error) {
	if username == "" || password == "" {
		return model.Identity{}, common.ErrValidation
	}

	user, err := s.userRepo.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("login failed: unknown or inactive username %q", username)
			return model.Identity{}, common.ErrInvalidCredentials
		}
		return model.Identity{}, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.PasswordDigest) {
		log.Printf("login failed: wrong password for user id %d", user.ID)
		return model.Identity{}, common.ErrInvalidCredentials
	}

	return user.Identity(), nil
}
