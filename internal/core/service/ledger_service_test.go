package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

func TestLedgerService_Ensure_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	svc := NewLedgerService(users, zerolog.Nop())

	id := domain.Identity{UID: "alice", Email: "alice@example.com", Name: "Alice"}
	first, err := svc.Ensure(context.Background(), id)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first.Points != 0 || first.Tokens != 0 {
		t.Fatalf("expected zero balances on first contact, got %d/%d", first.Points, first.Tokens)
	}

	// Earned balances must survive later ensures.
	if err := users.Credit(context.Background(), "alice", 10, 10); err != nil {
		t.Fatalf("credit: %v", err)
	}
	again, err := svc.Ensure(context.Background(), id)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if again.Points != 10 || again.Tokens != 10 {
		t.Fatalf("ensure reset balances: %d/%d", again.Points, again.Tokens)
	}
}

func TestLedgerService_Leaderboard_ExcludesAdminsAndRanks(t *testing.T) {
	users := newStubUserRepo()
	svc := NewLedgerService(users, zerolog.Nop())
	ctx := context.Background()

	_, _ = users.Ensure(ctx, domain.Identity{UID: "alice", Name: "Alice"})
	_, _ = users.Ensure(ctx, domain.Identity{UID: "bob", Email: "bob@example.com"})
	_, _ = users.Ensure(ctx, domain.Identity{UID: "boss", Admin: true})
	_ = users.Credit(ctx, "alice", 10, 10)
	_ = users.Credit(ctx, "bob", 30, 30)
	_ = users.Credit(ctx, "boss", 99, 99)

	entries, err := svc.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UID != "bob" || entries[1].UID != "alice" {
		t.Fatalf("unexpected ranking: %+v", entries)
	}
	if entries[0].DisplayName != "bob@example.com" {
		t.Fatalf("expected email fallback display name, got %q", entries[0].DisplayName)
	}
	if entries[1].DisplayName != "Alice" {
		t.Fatalf("expected name as display name, got %q", entries[1].DisplayName)
	}
}
