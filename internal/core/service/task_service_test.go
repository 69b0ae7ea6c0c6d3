package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

type taskFixture struct {
	users       *stubUserRepo
	tasks       *stubTaskRepo
	submissions *stubSubmissionRepo
	svc         ports.TaskService
	subSvc      ports.SubmissionService
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	submissions := newStubSubmissionRepo()
	return &taskFixture{
		users:       users,
		tasks:       tasks,
		submissions: submissions,
		svc:         NewTaskService(tasks, submissions, users, zerolog.Nop()),
		subSvc:      NewSubmissionService(submissions, tasks, users, zerolog.Nop()),
	}
}

func TestTaskService_Create(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.svc.Create(context.Background(), ports.CreateTaskInput{
		Title:       "clean up",
		Description: "tidy the workspace",
		Points:      15,
		CreatedBy:   "admin-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if task.Points != 15 {
		t.Fatalf("unexpected points: %d", task.Points)
	}
}

func TestTaskService_ListVisible_ExcludesActiveSubmissions(t *testing.T) {
	f := newTaskFixture(t)
	if _, err := f.users.Ensure(context.Background(), domain.Identity{UID: "alice"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	open, _ := f.svc.Create(context.Background(), ports.CreateTaskInput{Title: "a", Description: "a", Points: 5, CreatedBy: "admin"})
	taken, _ := f.svc.Create(context.Background(), ports.CreateTaskInput{Title: "b", Description: "b", Points: 5, CreatedBy: "admin"})

	detail, err := f.subSvc.Submit(context.Background(), ports.SubmitInput{TaskID: taken.ID, Caller: domain.Caller{UID: "alice"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	visible, err := f.svc.ListVisible(context.Background(), domain.Caller{UID: "alice"})
	if err != nil {
		t.Fatalf("list visible: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != open.ID {
		t.Fatalf("expected only the untouched task, got %+v", visible)
	}

	// Admins always see the full catalog.
	all, err := f.svc.ListVisible(context.Background(), domain.Caller{UID: "boss", Admin: true})
	if err != nil {
		t.Fatalf("list visible admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks for admin, got %d", len(all))
	}

	// A rejection makes the task visible to the member again.
	if _, err := f.subSvc.Reject(context.Background(), detail.ID, "redo"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	visible, err = f.svc.ListVisible(context.Background(), domain.Caller{UID: "alice"})
	if err != nil {
		t.Fatalf("list visible after reject: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected rejected task to reappear, got %d tasks", len(visible))
	}
}

func TestTaskService_Delete_ReversesGrantedCredit(t *testing.T) {
	f := newTaskFixture(t)
	if _, err := f.users.Ensure(context.Background(), domain.Identity{UID: "alice"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	task, _ := f.svc.Create(context.Background(), ports.CreateTaskInput{Title: "t", Description: "d", Points: 20, CreatedBy: "admin"})

	detail, err := f.subSvc.Submit(context.Background(), ports.SubmitInput{TaskID: task.ID, Caller: domain.Caller{UID: "alice"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.subSvc.Approve(context.Background(), detail.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := f.svc.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	user, _ := f.users.FindByUID(context.Background(), "alice")
	if user.Points != 0 || user.Tokens != 0 {
		t.Fatalf("expected balances reversed to zero, got %d/%d", user.Points, user.Tokens)
	}
	if _, err := f.submissions.FindByID(context.Background(), detail.ID); !errors.Is(err, domain.ErrSubmissionNotFound) {
		t.Fatalf("expected submission removed, got %v", err)
	}
	if _, err := f.tasks.FindByID(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected task removed, got %v", err)
	}
}

func TestTaskService_Delete_UnknownTask(t *testing.T) {
	f := newTaskFixture(t)
	if err := f.svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_DeleteAll_ClampsBalancesAtZero(t *testing.T) {
	f := newTaskFixture(t)
	if _, err := f.users.Ensure(context.Background(), domain.Identity{UID: "alice"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	task, _ := f.svc.Create(context.Background(), ports.CreateTaskInput{Title: "t", Description: "d", Points: 30, CreatedBy: "admin"})

	detail, _ := f.subSvc.Submit(context.Background(), ports.SubmitInput{TaskID: task.ID, Caller: domain.Caller{UID: "alice"}})
	if _, err := f.subSvc.Approve(context.Background(), detail.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Spend part of the granted tokens so the reversal would underflow.
	if _, err := f.users.DebitTokens(context.Background(), "alice", 25); err != nil {
		t.Fatalf("debit: %v", err)
	}

	if err := f.svc.DeleteAll(context.Background()); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	user, _ := f.users.FindByUID(context.Background(), "alice")
	if user.Points != 0 || user.Tokens != 0 {
		t.Fatalf("expected clamped zero balances, got %d/%d", user.Points, user.Tokens)
	}

	tasks, _ := f.tasks.List(context.Background(), nil)
	if len(tasks) != 0 {
		t.Fatalf("expected empty catalog, got %d tasks", len(tasks))
	}
}
