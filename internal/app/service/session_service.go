package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"taskreg/internal/common"
	"taskreg/internal/common/security"
	"taskreg/internal/domain/model"
	"taskreg/internal/domain/repository"
)

// SessionService turns a verified identity into a persisted bearer token and
// resolves tokens back into identities on later requests. Tokens are opaque;
// all session state lives in the session store.
type SessionService struct {
	sessions repository.SessionRepository
	userRepo repository.UserRepository
	ttl      time.Duration

	generateToken func() (string, error)
}

func NewSessionService(sessions repository.SessionRepository, userRepo repository.UserRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		sessions:      sessions,
		userRepo:      userRepo,
		ttl:           ttl,
		generateToken: security.GenerateSessionToken,
	}
}

// Create issues a fresh token bound to the identity's user id. Concurrent
// creates are safe: tokens come from crypto/rand, so collisions are
// negligible, and each call writes a distinct key.
func (s *SessionService) Create(ctx context.Context, identity model.Identity) (string, error) {
	token, err := s.generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	if err := s.sessions.Put(ctx, token, identity.ID, s.ttl); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}
	return token, nil
}

// Resolve maps a token back to an identity. The user row is re-fetched fresh
// on every call, filtered on active accounts, so a deactivated user loses
// access on their very next request even with an unexpired token; the stale
// session is dropped as a side effect. Data-layer failures propagate as-is
// and are never folded into the unauthenticated result.
func (s *SessionService) Resolve(ctx context.Context, token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, common.ErrUnauthenticated
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.Identity{}, common.ErrUnauthenticated
		}
		return model.Identity{}, fmt.Errorf("failed to look up session: %w", err)
	}

	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			if derr := s.sessions.Delete(ctx, token); derr != nil {
				log.Printf("failed to drop stale session for user id %d: %v", userID, derr)
			}
			return model.Identity{}, common.ErrUnauthenticated
		}
		return model.Identity{}, fmt.Errorf("failed to refetch session user: %w", err)
	}

	return user.Identity(), nil
}

// Destroy removes the session. Idempotent: destroying an unknown or
// already-destroyed token succeeds.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
