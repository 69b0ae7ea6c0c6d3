package ports

import (
	"context"
	"time"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// SubmitInput carries a member's task submission or resubmission.
type SubmitInput struct {
	TaskID   string
	Caller   domain.Caller
	MediaURL string
}

// TaskRef is the task detail embedded in submission views.
type TaskRef struct {
	ID          string
	Title       string
	Description string
	Points      int
}

// UserRef is the owner detail embedded in admin submission views.
type UserRef struct {
	UID   string
	Name  string
	Email string
}

// SubmissionDetail is the enriched submission view returned to callers.
type SubmissionDetail struct {
	ID            string
	Task          TaskRef
	User          UserRef
	Status        string
	MediaURL      string
	DeclineReason string
	SubmittedAt   time.Time
	// Resubmitted is set when Submit reused a rejected submission's row
	// instead of creating a new one.
	Resubmitted bool
}

// SubmissionService defines use-case operations for the submission lifecycle.
type SubmissionService interface {
	// Submit creates a pending submission, or moves the caller's rejected
	// submission on the same task back to pending (same id).
	Submit(ctx context.Context, in SubmitInput) (*SubmissionDetail, error)
	// Approve moves pending → approved and credits the owner's points and
	// tokens by the task's point value, exactly once per transition.
	Approve(ctx context.Context, submissionID string) (*SubmissionDetail, error)
	// Reject moves pending → rejected, storing the required reason.
	Reject(ctx context.Context, submissionID, reason string) (*SubmissionDetail, error)
	ListPending(ctx context.Context) ([]SubmissionDetail, error)
	ListForUser(ctx context.Context, uid string) ([]SubmissionDetail, error)
}
