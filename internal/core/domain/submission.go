package domain

import (
	"errors"
	"time"
)

// SubmissionStatus represents the lifecycle state of a task submission.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Approved is terminal; rejected is re-enterable via resubmission.
var validTransitions = map[SubmissionStatus][]SubmissionStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusPending},
}

var ErrSubmissionNotFound = errors.New("submission not found")
var ErrDuplicateSubmission = errors.New("task already submitted")
var ErrAlreadyApproved = errors.New("submission already approved")
var ErrAlreadyRejected = errors.New("submission already rejected")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrDeclineReasonRequired = errors.New("decline reason is required")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether the submission still blocks a new attempt on its
// task. Rejected submissions are inactive: the user may resubmit.
func (s SubmissionStatus) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Submission ties one user to one task attempt. At most one row exists per
// (user, task) pair; resubmission mutates the rejected row back to pending.
type Submission struct {
	ID            string           `json:"id,omitempty" bson:"_id,omitempty"`
	TaskID        string           `json:"task_id" bson:"task_id"`
	UserUID       string           `json:"user_uid" bson:"user_uid"`
	Status        SubmissionStatus `json:"status" bson:"status"`
	MediaURL      string           `json:"media_url,omitempty" bson:"media_url,omitempty"`
	DeclineReason string           `json:"decline_reason,omitempty" bson:"decline_reason,omitempty"`
	SubmittedAt   time.Time        `json:"submitted_at" bson:"submitted_at"`
}
