package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

type submissionService struct {
	submissions ports.SubmissionRepository
	tasks       ports.TaskRepository
	users       ports.UserRepository
	log         zerolog.Logger
}

// NewSubmissionService returns a SubmissionService implementation.
func NewSubmissionService(
	submissions ports.SubmissionRepository,
	tasks ports.TaskRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) ports.SubmissionService {
	return &submissionService{
		submissions: submissions,
		tasks:       tasks,
		users:       users,
		log:         log,
	}
}

// Submit creates a pending submission for the caller, or resubmits the
// caller's rejected submission on the same task in place.
func (s *submissionService) Submit(ctx context.Context, in ports.SubmitInput) (*ports.SubmissionDetail, error) {
	if in.Caller.Admin {
		return nil, fmt.Errorf("%w: admins do not submit tasks", domain.ErrForbidden)
	}

	user, err := s.users.FindByUID(ctx, in.Caller.UID)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	task, err := s.tasks.FindByID(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	existing, err := s.submissions.FindByUserAndTask(ctx, user.UID, task.ID)
	switch {
	case err == nil:
		if existing.Status.Active() {
			return nil, domain.ErrDuplicateSubmission
		}
		return s.resubmit(ctx, existing, task, user, in.MediaURL)
	case errors.Is(err, domain.ErrSubmissionNotFound):
		// first attempt, fall through to create
	default:
		return nil, fmt.Errorf("submit: %w", err)
	}

	created, err := s.submissions.Create(ctx, &domain.Submission{
		TaskID:      task.ID,
		UserUID:     user.UID,
		Status:      domain.StatusPending,
		MediaURL:    in.MediaURL,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	s.log.Info().
		Str("task_id", task.ID).
		Str("user_uid", user.UID).
		Str("submission_id", created.ID).
		Msg("task submitted")

	return detailOf(created, task, user), nil
}

func (s *submissionService) resubmit(ctx context.Context, sub *domain.Submission, task *domain.Task, user *domain.User, mediaURL string) (*ports.SubmissionDetail, error) {
	ok, err := s.submissions.Resubmit(ctx, sub.ID, mediaURL, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("resubmit: %w", err)
	}
	if !ok {
		// Lost a race: the row is no longer rejected.
		return nil, domain.ErrDuplicateSubmission
	}

	updated, err := s.submissions.FindByID(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("resubmit: %w", err)
	}

	s.log.Info().
		Str("task_id", task.ID).
		Str("user_uid", user.UID).
		Str("submission_id", sub.ID).
		Msg("task resubmitted")

	detail := detailOf(updated, task, user)
	detail.Resubmitted = true
	return detail, nil
}

// Approve moves pending → approved and credits the owner once per transition.
// The status-guarded update serializes racing approvals: only the request
// that wins the transition performs the credit.
//
// The transition and the credit are two writes with no transaction between
// them. If the credit fails the submission stays approved with no credit
// granted; the gap is logged for manual reconciliation rather than rolled
// back. Crediting first would risk a double credit on retry, which is worse
// than a missing one.
func (s *submissionService) Approve(ctx context.Context, submissionID string) (*ports.SubmissionDetail, error) {
	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	if sub.Status == domain.StatusApproved {
		return nil, domain.ErrAlreadyApproved
	}
	if !sub.Status.CanTransitionTo(domain.StatusApproved) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, sub.Status, domain.StatusApproved)
	}

	task, err := s.tasks.FindByID(ctx, sub.TaskID)
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}

	ok, err := s.submissions.Transition(ctx, sub.ID, domain.StatusPending, domain.StatusApproved, "")
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	if !ok {
		return nil, domain.ErrAlreadyApproved
	}

	if err := s.users.Credit(ctx, sub.UserUID, task.Points, task.Points); err != nil {
		s.log.Error().
			Err(err).
			Str("submission_id", sub.ID).
			Str("user_uid", sub.UserUID).
			Int("points", task.Points).
			Msg("submission approved but credit failed")
		return nil, fmt.Errorf("approve: credit user: %w", err)
	}

	s.log.Info().
		Str("submission_id", sub.ID).
		Str("user_uid", sub.UserUID).
		Int("points", task.Points).
		Msg("submission approved")

	sub.Status = domain.StatusApproved
	user, err := s.users.FindByUID(ctx, sub.UserUID)
	if err != nil {
		return nil, fmt.Errorf("approve: %w", err)
	}
	return detailOf(sub, task, user), nil
}

// Reject moves pending → rejected storing the reason. No balance effect.
func (s *submissionService) Reject(ctx context.Context, submissionID, reason string) (*ports.SubmissionDetail, error) {
	if reason == "" {
		return nil, domain.ErrDeclineReasonRequired
	}

	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("reject: %w", err)
	}
	if sub.Status == domain.StatusRejected {
		return nil, domain.ErrAlreadyRejected
	}
	if !sub.Status.CanTransitionTo(domain.StatusRejected) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, sub.Status, domain.StatusRejected)
	}

	ok, err := s.submissions.Transition(ctx, sub.ID, domain.StatusPending, domain.StatusRejected, reason)
	if err != nil {
		return nil, fmt.Errorf("reject: %w", err)
	}
	if !ok {
		return nil, domain.ErrAlreadyRejected
	}

	s.log.Info().
		Str("submission_id", sub.ID).
		Str("user_uid", sub.UserUID).
		Msg("submission rejected")

	sub.Status = domain.StatusRejected
	sub.DeclineReason = reason

	task, err := s.tasks.FindByID(ctx, sub.TaskID)
	if err != nil {
		return nil, fmt.Errorf("reject: %w", err)
	}
	user, err := s.users.FindByUID(ctx, sub.UserUID)
	if err != nil {
		return nil, fmt.Errorf("reject: %w", err)
	}
	return detailOf(sub, task, user), nil
}

// ListPending returns all pending submissions enriched with task and owner
// detail for the review queue.
func (s *submissionService) ListPending(ctx context.Context) ([]ports.SubmissionDetail, error) {
	subs, err := s.submissions.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	return s.enrich(ctx, subs)
}

// ListForUser returns the user's own submissions, newest first.
func (s *submissionService) ListForUser(ctx context.Context, uid string) ([]ports.SubmissionDetail, error) {
	subs, err := s.submissions.ListByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return s.enrich(ctx, subs)
}

// enrich joins submissions with their task and owner. Rows whose task was
// deleted out from under them are skipped rather than failing the whole list.
func (s *submissionService) enrich(ctx context.Context, subs []*domain.Submission) ([]ports.SubmissionDetail, error) {
	details := make([]ports.SubmissionDetail, 0, len(subs))
	for _, sub := range subs {
		task, err := s.tasks.FindByID(ctx, sub.TaskID)
		if err != nil {
			if errors.Is(err, domain.ErrTaskNotFound) {
				s.log.Warn().Str("submission_id", sub.ID).Str("task_id", sub.TaskID).Msg("submission references missing task")
				continue
			}
			return nil, fmt.Errorf("enrich submission: %w", err)
		}
		user, err := s.users.FindByUID(ctx, sub.UserUID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				s.log.Warn().Str("submission_id", sub.ID).Str("user_uid", sub.UserUID).Msg("submission references missing user")
				continue
			}
			return nil, fmt.Errorf("enrich submission: %w", err)
		}
		details = append(details, *detailOf(sub, task, user))
	}
	return details, nil
}

func detailOf(sub *domain.Submission, task *domain.Task, user *domain.User) *ports.SubmissionDetail {
	return &ports.SubmissionDetail{
		ID: sub.ID,
		Task: ports.TaskRef{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Points:      task.Points,
		},
		User: ports.UserRef{
			UID:   user.UID,
			Name:  user.Name,
			Email: user.Email,
		},
		Status:        string(sub.Status),
		MediaURL:      sub.MediaURL,
		DeclineReason: sub.DeclineReason,
		SubmittedAt:   sub.SubmittedAt,
	}
}
