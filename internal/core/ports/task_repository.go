package ports

import (
	"context"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// TaskRepository defines persistence operations for the task catalog.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns tasks newest-first, skipping any id in excludeIDs.
	List(ctx context.Context, excludeIDs []string) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
