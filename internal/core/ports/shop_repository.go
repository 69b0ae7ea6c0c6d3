package ports

import (
	"context"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// ShopRepository defines persistence operations for the shop catalog.
type ShopRepository interface {
	Create(ctx context.Context, item *domain.ShopItem) (*domain.ShopItem, error)
	FindByID(ctx context.Context, id string) (*domain.ShopItem, error)
	List(ctx context.Context) ([]*domain.ShopItem, error)
	Delete(ctx context.Context, id string) error
}
