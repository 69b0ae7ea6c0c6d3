package ports

import (
	"context"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// CreateItemInput carries all data needed to create a shop item.
type CreateItemInput struct {
	Name        string
	Description string
	Cost        int
	FormLink    string
}

// ConfirmResult reports the outcome of a confirmed redemption.
type ConfirmResult struct {
	RemainingTokens int
}

// ShopService defines the shop catalog and the two-phase redemption flow.
type ShopService interface {
	List(ctx context.Context) ([]*domain.ShopItem, error)
	Create(ctx context.Context, in CreateItemInput) (*domain.ShopItem, error)
	Delete(ctx context.Context, id string) error
	// Quote validates affordability and returns the item with its
	// fulfillment form link. No balance mutation.
	Quote(ctx context.Context, caller domain.Caller, itemID string) (*domain.ShopItem, error)
	// Confirm re-validates and debits the item cost. Confirm is not
	// idempotent: each call debits while the balance covers the cost.
	// Members may confirm only their own redemption; admins may confirm
	// anyone's.
	Confirm(ctx context.Context, caller domain.Caller, itemID, userUID string) (*ConfirmResult, error)
	// Cancel acknowledges an abandoned quote. No debit happened at quote
	// time, so this mutates nothing.
	Cancel(ctx context.Context, caller domain.Caller, itemID, userUID string) error
}
