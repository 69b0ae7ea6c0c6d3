package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// In-memory repository stubs shared by the service tests. They mirror the
// storage-layer guarantees the services rely on: unique (user, task) pairs,
// status-guarded transitions, and balance-guarded debits.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Ensure(_ context.Context, id domain.Identity) (*domain.User, error) {
	if u, ok := r.users[id.UID]; ok {
		return cloneUser(u), nil
	}
	u := &domain.User{
		ID:        id.UID,
		UID:       id.UID,
		Name:      id.Name,
		Email:     id.Email,
		Admin:     id.Admin,
		CreatedAt: time.Now().UTC(),
	}
	r.users[id.UID] = u
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUID(_ context.Context, uid string) (*domain.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Credit(_ context.Context, uid string, points, tokens int) error {
	u, ok := r.users[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Points += points
	u.Tokens += tokens
	return nil
}

func (r *stubUserRepo) DebitTokens(_ context.Context, uid string, cost int) (*domain.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.Tokens < cost {
		return nil, domain.ErrInsufficientTokens
	}
	u.Tokens -= cost
	return cloneUser(u), nil
}

func (r *stubUserRepo) ReverseCredit(_ context.Context, uid string, points, tokens int) error {
	u, ok := r.users[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Points -= points
	if u.Points < 0 {
		u.Points = 0
	}
	u.Tokens -= tokens
	if u.Tokens < 0 {
		u.Tokens = 0
	}
	return nil
}

func (r *stubUserRepo) ListNonAdmin(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if !u.Admin {
			out = append(out, cloneUser(u))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	return out, nil
}

type stubTaskRepo struct {
	tasks map[string]*domain.Task
	order []string
	seq   int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.seq++
	clone := *t
	clone.ID = fmt.Sprintf("task-%d", r.seq)
	r.tasks[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, excludeIDs []string) ([]*domain.Task, error) {
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*domain.Task
	for _, id := range r.order {
		t, ok := r.tasks[id]
		if !ok {
			continue
		}
		if _, skip := excluded[id]; skip {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) DeleteAll(_ context.Context) error {
	r.tasks = make(map[string]*domain.Task)
	r.order = nil
	return nil
}

type stubSubmissionRepo struct {
	subs map[string]*domain.Submission
	seq  int
}

func newStubSubmissionRepo() *stubSubmissionRepo {
	return &stubSubmissionRepo{subs: make(map[string]*domain.Submission)}
}

func (r *stubSubmissionRepo) Create(_ context.Context, s *domain.Submission) (*domain.Submission, error) {
	for _, existing := range r.subs {
		if existing.UserUID == s.UserUID && existing.TaskID == s.TaskID {
			return nil, domain.ErrDuplicateSubmission
		}
	}
	r.seq++
	clone := *s
	clone.ID = fmt.Sprintf("sub-%d", r.seq)
	r.subs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSubmissionRepo) FindByID(_ context.Context, id string) (*domain.Submission, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSubmissionRepo) FindByUserAndTask(_ context.Context, uid, taskID string) (*domain.Submission, error) {
	for _, s := range r.subs {
		if s.UserUID == uid && s.TaskID == taskID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSubmissionNotFound
}

func (r *stubSubmissionRepo) ListByUser(_ context.Context, uid string) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, s := range r.subs {
		if s.UserUID == uid {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSubmissionRepo) ListByStatus(_ context.Context, status domain.SubmissionStatus) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, s := range r.subs {
		if s.Status == status {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSubmissionRepo) ListByTaskAndStatus(_ context.Context, taskID string, status domain.SubmissionStatus) ([]*domain.Submission, error) {
	var out []*domain.Submission
	for _, s := range r.subs {
		if s.TaskID == taskID && s.Status == status {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSubmissionRepo) Transition(_ context.Context, id string, from, to domain.SubmissionStatus, reason string) (bool, error) {
	s, ok := r.subs[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	if reason != "" {
		s.DeclineReason = reason
	}
	return true, nil
}

func (r *stubSubmissionRepo) Resubmit(_ context.Context, id, mediaURL string, at time.Time) (bool, error) {
	s, ok := r.subs[id]
	if !ok || s.Status != domain.StatusRejected {
		return false, nil
	}
	s.Status = domain.StatusPending
	s.DeclineReason = ""
	s.SubmittedAt = at
	if mediaURL != "" {
		s.MediaURL = mediaURL
	}
	return true, nil
}

func (r *stubSubmissionRepo) DeleteByTask(_ context.Context, taskID string) error {
	for id, s := range r.subs {
		if s.TaskID == taskID {
			delete(r.subs, id)
		}
	}
	return nil
}

func (r *stubSubmissionRepo) DeleteAll(_ context.Context) error {
	r.subs = make(map[string]*domain.Submission)
	return nil
}

type stubShopRepo struct {
	items map[string]*domain.ShopItem
	seq   int
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{items: make(map[string]*domain.ShopItem)}
}

func (r *stubShopRepo) Create(_ context.Context, item *domain.ShopItem) (*domain.ShopItem, error) {
	r.seq++
	clone := *item
	clone.ID = fmt.Sprintf("item-%d", r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubShopRepo) FindByID(_ context.Context, id string) (*domain.ShopItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *stubShopRepo) List(_ context.Context) ([]*domain.ShopItem, error) {
	var out []*domain.ShopItem
	for _, item := range r.items {
		clone := *item
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubShopRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

type tokenEntry struct {
	uid       string
	expiresAt time.Time
}

type stubTokenStore struct {
	tokens map[string]tokenEntry
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]tokenEntry)}
}

func (s *stubTokenStore) Save(_ context.Context, token, uid string, ttl time.Duration) error {
	s.tokens[token] = tokenEntry{uid: uid, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *stubTokenStore) Lookup(_ context.Context, token string) (string, error) {
	entry, ok := s.tokens[token]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", domain.ErrInvalidSharedToken
	}
	return entry.uid, nil
}
