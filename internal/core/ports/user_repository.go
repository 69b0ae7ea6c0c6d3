package ports

import (
	"context"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// UserRepository defines persistence operations for the user ledger.
type UserRepository interface {
	// Ensure is an idempotent get-or-create keyed on the identity's uid.
	// First contact seeds zero balances; the admin flag comes from the
	// identity claim only at creation time.
	Ensure(ctx context.Context, id domain.Identity) (*domain.User, error)
	FindByUID(ctx context.Context, uid string) (*domain.User, error)
	// Credit atomically increments both balances.
	Credit(ctx context.Context, uid string, points, tokens int) error
	// DebitTokens atomically subtracts cost from the token balance and
	// returns the updated user. The write is guarded at the storage layer:
	// it fails with domain.ErrInsufficientTokens rather than going negative.
	DebitTokens(ctx context.Context, uid string, cost int) (*domain.User, error)
	// ReverseCredit subtracts previously granted balances, clamping both at
	// zero in a single atomic update.
	ReverseCredit(ctx context.Context, uid string, points, tokens int) error
	// ListNonAdmin returns all non-admin users sorted by points descending.
	ListNonAdmin(ctx context.Context) ([]*domain.User, error)
}
