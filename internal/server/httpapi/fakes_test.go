package httpapi

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// fakeUsers accepts tokens of the form "tok-<userID>".
type fakeUsers struct {
	regResp *services.Session
	regErr  error

	loginResp *services.Session
	loginErr  error

	meResp *models.User
	meErr  error

	profileResp  *models.User
	profileErr   error
	profilePatch models.ProfilePatch
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password string) (*services.Session, error) {
	return f.regResp, f.regErr
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.Session, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeUsers) Verify(ctx context.Context, token string) (string, error) {
	if len(token) > 4 && token[:4] == "tok-" {
		return token[4:], nil
	}
	return "", common.ErrInvalidToken
}

func (f *fakeUsers) Me(ctx context.Context, userID string) (*models.User, error) {
	if f.meResp == nil && f.meErr == nil {
		return &models.User{ID: userID, Name: "Ann", Email: "ann@x.com"}, nil
	}
	return f.meResp, f.meErr
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error) {
	f.profilePatch = patch
	return f.profileResp, f.profileErr
}

// memTasks is an owner-scoped in-memory task service.
type memTasks struct {
	mu    sync.Mutex
	seq   int
	clock time.Time
	rows  map[string]*models.Task
	err   error
}

func newMemTasks() *memTasks {
	return &memTasks{rows: map[string]*models.Task{}, clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memTasks) List(ctx context.Context, userID string) ([]*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*models.Task, 0)
	for _, t := range m.rows {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTasks) Create(ctx context.Context, userID, title, description string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if title == "" {
		return nil, common.NewValidationError("title", "Title must be 1-200 characters")
	}
	m.seq++
	m.clock = m.clock.Add(time.Minute)
	t := &models.Task{ID: "t" + strconv.Itoa(m.seq), UserID: userID, Title: title, Description: description, Status: models.TaskStatusPending, CreatedAt: m.clock}
	m.rows[t.ID] = t
	cp := *t
	return &cp, nil
}

func (m *memTasks) Update(ctx context.Context, userID, taskID string, p models.TaskPatch) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[taskID]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, common.NewValidationError("status", "Status must be pending or completed")
		}
		t.Status = *p.Status
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) Delete(ctx context.Context, userID, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[taskID]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(m.rows, taskID)
	return nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
