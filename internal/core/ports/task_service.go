package ports

import (
	"context"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Points      int
	CreatedBy   string
}

// TaskService defines use-case operations for the task catalog.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	// ListVisible returns all tasks for admins; for members it hides tasks
	// the caller already has an active (pending or approved) submission for.
	ListVisible(ctx context.Context, caller domain.Caller) ([]*domain.Task, error)
	// Delete removes a task and its submissions, reversing credit granted
	// for approved submissions (clamped at zero).
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every task and submission, reversing all granted
	// credit first.
	DeleteAll(ctx context.Context) error
}
