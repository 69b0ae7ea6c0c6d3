package ports

import (
	"context"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// LeaderboardEntry is one ranked row of the leaderboard projection.
type LeaderboardEntry struct {
	UID         string
	DisplayName string
	Points      int
	Tokens      int
}

// LedgerService defines use-case operations on the user ledger.
type LedgerService interface {
	// Ensure is invoked once per authenticated request at the identity
	// resolver boundary.
	Ensure(ctx context.Context, id domain.Identity) (*domain.User, error)
	// Leaderboard returns non-admin users ranked by descending points.
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
}
