package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

func TestSharedTokenService_Generate(t *testing.T) {
	users := newStubUserRepo()
	store := newStubTokenStore()
	svc := NewSharedTokenService(store, users, "secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, _ = users.Ensure(ctx, domain.Identity{UID: "alice"})

	grant, err := svc.Generate(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if grant.Token == "" {
		t.Fatalf("expected opaque token")
	}

	// Default validity is 30 days.
	wantMin := time.Now().Add(29 * 24 * time.Hour)
	if grant.ExpiresAt.Before(wantMin) {
		t.Fatalf("expected ~30 day expiry, got %v", grant.ExpiresAt)
	}

	uid, err := store.Lookup(ctx, grant.Token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if uid != "alice" {
		t.Fatalf("token resolves to %q", uid)
	}
}

func TestSharedTokenService_Generate_UnknownTarget(t *testing.T) {
	users := newStubUserRepo()
	svc := NewSharedTokenService(newStubTokenStore(), users, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), "ghost", 7); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSharedTokenService_Login(t *testing.T) {
	users := newStubUserRepo()
	store := newStubTokenStore()
	svc := NewSharedTokenService(store, users, "secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, _ = users.Ensure(ctx, domain.Identity{UID: "alice", Email: "alice@example.com", Name: "Alice"})
	grant, err := svc.Generate(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	result, err := svc.Login(ctx, grant.Token)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("credential invalid: %v", err)
	}
	if claims["uid"] != "alice" {
		t.Fatalf("unexpected uid claim: %v", claims["uid"])
	}
	if claims["admin"] != false {
		t.Fatalf("unexpected admin claim: %v", claims["admin"])
	}
	if claims["email"] != "alice@example.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
}

func TestSharedTokenService_Login_UnknownToken(t *testing.T) {
	svc := NewSharedTokenService(newStubTokenStore(), newStubUserRepo(), "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "nope"); !errors.Is(err, domain.ErrInvalidSharedToken) {
		t.Fatalf("expected ErrInvalidSharedToken, got %v", err)
	}
}

func TestSharedTokenService_Login_DeletedTarget(t *testing.T) {
	users := newStubUserRepo()
	store := newStubTokenStore()
	svc := NewSharedTokenService(store, users, "secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, _ = users.Ensure(ctx, domain.Identity{UID: "alice"})
	grant, err := svc.Generate(ctx, "alice", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// The target disappears between minting and login.
	delete(users.users, "alice")

	if _, err := svc.Login(ctx, grant.Token); !errors.Is(err, domain.ErrInvalidSharedToken) {
		t.Fatalf("expected ErrInvalidSharedToken, got %v", err)
	}
}
