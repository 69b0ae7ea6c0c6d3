package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

type taskService struct {
	tasks       ports.TaskRepository
	submissions ports.SubmissionRepository
	users       ports.UserRepository
	log         zerolog.Logger
}

// NewTaskService returns a TaskService implementation.
func NewTaskService(
	tasks ports.TaskRepository,
	submissions ports.SubmissionRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) ports.TaskService {
	return &taskService{
		tasks:       tasks,
		submissions: submissions,
		users:       users,
		log:         log,
	}
}

func (s *taskService) Create(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Points:      in.Points,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.Info().Str("task_id", task.ID).Str("created_by", in.CreatedBy).Int("points", in.Points).Msg("task created")
	return task, nil
}

// ListVisible returns all tasks for admins. Members only see tasks without
// an active submission of theirs — a rejection makes the task visible again.
func (s *taskService) ListVisible(ctx context.Context, caller domain.Caller) ([]*domain.Task, error) {
	if caller.Admin {
		return s.tasks.List(ctx, nil)
	}

	subs, err := s.submissions.ListByUser(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var exclude []string
	for _, sub := range subs {
		if sub.Status.Active() {
			exclude = append(exclude, sub.TaskID)
		}
	}
	return s.tasks.List(ctx, exclude)
}

// Delete removes a task, its submissions, and reverses credit previously
// granted for approved submissions. Balances clamp at zero.
func (s *taskService) Delete(ctx context.Context, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	approved, err := s.submissions.ListByTaskAndStatus(ctx, task.ID, domain.StatusApproved)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	for _, sub := range approved {
		if err := s.users.ReverseCredit(ctx, sub.UserUID, task.Points, task.Points); err != nil {
			return fmt.Errorf("delete task: reverse credit for %s: %w", sub.UserUID, err)
		}
	}

	if err := s.submissions.DeleteByTask(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.log.Info().Str("task_id", task.ID).Int("reversed", len(approved)).Msg("task deleted")
	return nil
}

// DeleteAll wipes the catalog and every submission, reversing all granted
// credit first.
func (s *taskService) DeleteAll(ctx context.Context) error {
	tasks, err := s.tasks.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	pointsByTask := make(map[string]int, len(tasks))
	for _, t := range tasks {
		pointsByTask[t.ID] = t.Points
	}

	approved, err := s.submissions.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	for _, sub := range approved {
		points, ok := pointsByTask[sub.TaskID]
		if !ok {
			continue
		}
		if err := s.users.ReverseCredit(ctx, sub.UserUID, points, points); err != nil {
			return fmt.Errorf("delete all tasks: reverse credit for %s: %w", sub.UserUID, err)
		}
	}

	if err := s.submissions.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	if err := s.tasks.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}

	s.log.Info().Int("tasks", len(tasks)).Int("reversed", len(approved)).Msg("all tasks deleted")
	return nil
}
