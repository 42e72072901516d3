package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"
)

func activeUser(id int64, username string, role model.Role) *model.User {
	return &model.User{ID: id, Name: username, Username: username, Active: true, Role: role}
}

func TestSessionCreateAndResolve(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo(activeUser(7, "bob", model.RoleUser))
	svc := NewSessionService(sessions, users, 24*time.Hour)

	token, err := svc.Create(context.Background(), model.Identity{ID: 7, Username: "bob", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if ttl := sessions.ttls[token]; ttl != 24*time.Hour {
		t.Fatalf("expected 24h TTL, got %v", ttl)
	}

	identity, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if identity.ID != 7 || identity.Username != "bob" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestSessionCreateYieldsDistinctTokens(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo(activeUser(1, "a", model.RoleUser))
	svc := NewSessionService(sessions, users, time.Hour)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token, err := svc.Create(context.Background(), model.Identity{ID: 1})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[token] {
			t.Fatalf("token collision on iteration %d", i)
		}
		seen[token] = true
	}
}

func TestResolveUnknownToken(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), newFakeUserRepo(), time.Hour)

	for _, token := range []string{"", "never-issued"} {
		if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, common.ErrUnauthenticated) {
			t.Fatalf("token %q: want ErrUnauthenticated, got %v", token, err)
		}
	}
}

func TestResolveDeactivatedUserDropsStaleSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	bob := activeUser(7, "bob", model.RoleUser)
	users := newFakeUserRepo(bob)
	svc := NewSessionService(sessions, users, time.Hour)

	token, err := svc.Create(context.Background(), model.Identity{ID: 7})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Admin deactivates bob mid-session.
	bob.Active = false

	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated after deactivation, got %v", err)
	}
	if _, stillThere := sessions.sessions[token]; stillThere {
		t.Fatal("stale session should have been deleted")
	}
}

func TestResolveStoreFailurePropagates(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.err = errors.New("redis down")
	svc := NewSessionService(sessions, newFakeUserRepo(), time.Hour)

	_, err := svc.Resolve(context.Background(), "some-token")
	if errors.Is(err, common.ErrUnauthenticated) {
		t.Fatal("store outage must not read as an unauthenticated session")
	}
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo(activeUser(1, "a", model.RoleUser))
	svc := NewSessionService(sessions, users, time.Hour)

	token, err := svc.Create(context.Background(), model.Identity{ID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Destroy(context.Background(), token); err != nil {
		t.Fatalf("first destroy: %v", err)
	}
	if err := svc.Destroy(context.Background(), token); err != nil {
		t.Fatalf("second destroy should succeed: %v", err)
	}
	if err := svc.Destroy(context.Background(), "never-issued"); err != nil {
		t.Fatalf("destroying an unknown token should succeed: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("destroyed token must not resolve, got %v", err)
	}
}
