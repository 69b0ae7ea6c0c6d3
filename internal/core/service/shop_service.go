package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

type shopService struct {
	items ports.ShopRepository
	users ports.UserRepository
	log   zerolog.Logger
}

// NewShopService returns a ShopService implementation.
func NewShopService(items ports.ShopRepository, users ports.UserRepository, log zerolog.Logger) ports.ShopService {
	return &shopService{items: items, users: users, log: log}
}

func (s *shopService) List(ctx context.Context) ([]*domain.ShopItem, error) {
	return s.items.List(ctx)
}

func (s *shopService) Create(ctx context.Context, in ports.CreateItemInput) (*domain.ShopItem, error) {
	item, err := s.items.Create(ctx, &domain.ShopItem{
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		FormLink:    in.FormLink,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info().Str("item_id", item.ID).Int("cost", in.Cost).Msg("shop item created")
	return item, nil
}

func (s *shopService) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.log.Info().Str("item_id", id).Msg("shop item deleted")
	return nil
}

// Quote is the non-mutating first phase of redemption: it checks
// affordability and hands back the item with its fulfillment form link.
func (s *shopService) Quote(ctx context.Context, caller domain.Caller, itemID string) (*domain.ShopItem, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	user, err := s.users.FindByUID(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	if !user.CanAfford(item.Cost) {
		return nil, domain.ErrInsufficientTokens
	}
	return item, nil
}

// Confirm re-validates affordability and debits the cost. Balances may have
// moved since the quote, so the debit itself is the authoritative check.
func (s *shopService) Confirm(ctx context.Context, caller domain.Caller, itemID, userUID string) (*ports.ConfirmResult, error) {
	if !caller.Admin && caller.UID != userUID {
		return nil, fmt.Errorf("%w: cannot confirm another user's redemption", domain.ErrForbidden)
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}
	// Separate lookup so an unknown user surfaces as not-found rather than
	// as an insufficient balance from the guarded debit.
	if _, err := s.users.FindByUID(ctx, userUID); err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}

	user, err := s.users.DebitTokens(ctx, userUID, item.Cost)
	if err != nil {
		return nil, fmt.Errorf("confirm: %w", err)
	}

	s.log.Info().
		Str("item_id", item.ID).
		Str("user_uid", userUID).
		Int("cost", item.Cost).
		Int("remaining", user.Tokens).
		Msg("redemption confirmed")

	return &ports.ConfirmResult{RemainingTokens: user.Tokens}, nil
}

// Cancel acknowledges an abandoned quote. Nothing was debited at quote time,
// so there is nothing to undo.
func (s *shopService) Cancel(ctx context.Context, caller domain.Caller, itemID, userUID string) error {
	if !caller.Admin && caller.UID != userUID {
		return fmt.Errorf("%w: cannot cancel another user's redemption", domain.ErrForbidden)
	}
	if _, err := s.users.FindByUID(ctx, userUID); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}

	s.log.Info().Str("item_id", itemID).Str("user_uid", userUID).Msg("redemption cancelled")
	return nil
}
