package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

type ledgerService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

// NewLedgerService returns a LedgerService implementation.
func NewLedgerService(users ports.UserRepository, log zerolog.Logger) ports.LedgerService {
	return &ledgerService{users: users, log: log}
}

func (s *ledgerService) Ensure(ctx context.Context, id domain.Identity) (*domain.User, error) {
	user, err := s.users.Ensure(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return user, nil
}

// Leaderboard projects the ledger into ranked entries. The repository
// returns non-admin users already sorted by descending points; ties keep
// storage iteration order.
func (s *ledgerService) Leaderboard(ctx context.Context) ([]ports.LeaderboardEntry, error) {
	users, err := s.users.ListNonAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	entries := make([]ports.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, ports.LeaderboardEntry{
			UID:         u.UID,
			DisplayName: u.DisplayName(),
			Points:      u.Points,
			Tokens:      u.Tokens,
		})
	}
	return entries, nil
}
