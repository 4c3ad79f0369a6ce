package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/google/uuid"
)

type fakeUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	failErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) emailTaken(email, exceptID string) bool {
	for id, u := range f.byID {
		if u.Email == email && id != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	if f.emailTaken(u.Email, "") {
		return nil, fmt.Errorf("db error: %w", common.ErrorAlreadyExists)
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	if f.emailTaken(u.Email, u.ID) {
		return nil, fmt.Errorf("db error: %w", common.ErrorAlreadyExists)
	}
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

type fakeTasksRepo struct {
	mu      sync.Mutex
	rows    map[string]*models.Task
	clock   time.Time
	failErr error
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{rows: map[string]*models.Task{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	out := make([]*models.Task, 0)
	for _, t := range f.rows {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTasksRepo) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.clock = f.clock.Add(time.Second)
	t.ID = uuid.NewString()
	t.CreatedAt = f.clock
	cp := *t
	f.rows[t.ID] = &cp
	return t, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, userID, taskID string, p models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[taskID]
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
		t.Status = *p.Status
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, userID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[taskID]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.rows, taskID)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), t: newFakeTasksRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository         { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasks.Repository         { return m.t }
