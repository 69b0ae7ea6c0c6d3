package ports

import (
	"context"
	"time"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// SubmissionRepository defines persistence operations for submissions.
// The (user_uid, task_id) pair is unique at the storage layer.
type SubmissionRepository interface {
	// Create inserts a pending submission. A duplicate (user, task) pair
	// fails with domain.ErrDuplicateSubmission.
	Create(ctx context.Context, s *domain.Submission) (*domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	FindByUserAndTask(ctx context.Context, uid, taskID string) (*domain.Submission, error)
	ListByUser(ctx context.Context, uid string) ([]*domain.Submission, error)
	ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]*domain.Submission, error)
	ListByTaskAndStatus(ctx context.Context, taskID string, status domain.SubmissionStatus) ([]*domain.Submission, error)
	// Transition performs a status-guarded update: the row moves from
	// `from` to `to` only if it is still in `from`, serializing racing
	// reviews at the storage layer. reason is stored as the decline reason
	// when non-empty. Returns false when the guard did not match.
	Transition(ctx context.Context, id string, from, to domain.SubmissionStatus, reason string) (bool, error)
	// Resubmit moves a rejected submission back to pending in place: same
	// id, decline reason cleared, timestamp refreshed, media URL replaced
	// when non-empty. Returns false when the row is not currently rejected.
	Resubmit(ctx context.Context, id, mediaURL string, at time.Time) (bool, error)
	DeleteByTask(ctx context.Context, taskID string) error
	DeleteAll(ctx context.Context) error
}
