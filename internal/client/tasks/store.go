package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/google/uuid"
)

// API is the task part of the REST client.
type API interface {
	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token, title, description string) (*models.Task, error)
	UpdateTask(ctx context.Context, token, id string, update models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
}

// Session supplies the token for a call and is told when the server
// rejects it.
type Session interface {
	Token() (string, error)
	Reject(token string)
}

type Store struct {
	api    API
	logger logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	gen     uint64
	seq     uint64
	order   []string
	entries map[string]*entry
	removed map[string]uint64
	lanes   map[string]chan struct{}

	inflight sync.WaitGroup
}

func NewStore(api API, l logging.Logger) *Store {
	return &Store{
		api:     api,
		logger:  l.With("module", "tasks"),
		now:     time.Now,
		entries: make(map[string]*entry),
		removed: make(map[string]uint64),
		lanes:   make(map[string]chan struct{}),
	}
}

// Tasks returns a copy of the visible list, placeholders included.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].task)
	}
	return out
}

// Get returns a visible task by id.
func (s *Store) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.hidden {
		return models.Task{}, false
	}
	return e.task, true
}

// IsPending reports whether the entry is unconfirmed or has a request in flight.
func (s *Store) IsPending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	return ok && (e.placeholder || len(e.log) > 0)
}

// Clear drops all task state. Requests still in flight settle into nothing.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.order = nil
	s.entries = make(map[string]*entry)
	s.removed = make(map[string]uint64)
}

// Settle blocks until every request issued so far has been reconciled.
func (s *Store) Settle(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Create prepends a placeholder entry and asks the server to create the
// task. A blank title is rejected with common.ErrBlankTitle and nothing else
// happens.
func (s *Store) Create(ctx context.Context, sess Session, title, description string) (*Pending, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrBlankTitle
	}
	description = strings.TrimSpace(description)

	token, err := sess.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	placeholder := common.PlaceholderIDPrefix + uuid.NewString()
	m := s.newMutation(kindCreate, models.Task{}, 0)
	e := &entry{
		task: models.Task{
			ID:          placeholder,
			Title:       title,
			Description: description,
			Status:      models.TaskStatusPending,
			CreatedAt:   s.now(),
		},
		placeholder: true,
		log:         []*mutation{m},
		touched:     m.seq,
	}
	s.entries[placeholder] = e
	s.order = append([]string{placeholder}, s.order...)

	p := newPending()
	gen := s.gen
	reqCtx := context.WithoutCancel(ctx)

	s.enqueue(placeholder, func() {
		task, err := s.api.CreateTask(reqCtx, token, title, description)
		s.settleCreate(reqCtx, gen, placeholder, task, err)
		s.finish(sess, token, p, task, err)
	})
	return p, nil
}

// Toggle flips pending <-> completed.
func (s *Store) Toggle(ctx context.Context, sess Session, id string) (*Pending, error) {
	token, err := sess.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.mutable(id)
	if err != nil {
		return nil, err
	}

	m := s.newMutation(kindStatus, e.task, 0)
	status := e.task.Status.Toggled()
	e.task.Status = status
	e.push(m)

	return s.issueUpdate(ctx, sess, token, id, m, models.TaskUpdate{Status: &status}), nil
}

// Rename replaces the title. A blank title is rejected with
// common.ErrBlankTitle and leaves the entry untouched.
func (s *Store) Rename(ctx context.Context, sess Session, id, title string) (*Pending, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrBlankTitle
	}

	token, err := sess.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.mutable(id)
	if err != nil {
		return nil, err
	}

	m := s.newMutation(kindTitle, e.task, 0)
	e.task.Title = title
	e.push(m)

	return s.issueUpdate(ctx, sess, token, id, m, models.TaskUpdate{Title: &title}), nil
}

// Delete hides the entry at once; a failed request puts it back where it was.
func (s *Store) Delete(ctx context.Context, sess Session, id string) (*Pending, error) {
	token, err := sess.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.mutable(id)
	if err != nil {
		return nil, err
	}

	index := s.indexOf(id)
	m := s.newMutation(kindDelete, e.task, index)
	if index+1 < len(s.order) {
		m.next = s.order[index+1]
	}
	s.order = append(s.order[:index], s.order[index+1:]...)
	e.hidden = true
	e.push(m)

	p := newPending()
	gen := s.gen
	reqCtx := context.WithoutCancel(ctx)

	s.enqueue(id, func() {
		err := s.api.DeleteTask(reqCtx, token, id)
		s.settle(reqCtx, gen, id, m, nil, err)
		s.finish(sess, token, p, nil, err)
	})
	return p, nil
}

func (s *Store) issueUpdate(ctx context.Context, sess Session, token, id string, m *mutation, update models.TaskUpdate) *Pending {
	p := newPending()
	gen := s.gen
	reqCtx := context.WithoutCancel(ctx)

	s.enqueue(id, func() {
		task, err := s.api.UpdateTask(reqCtx, token, id, update)
		s.settle(reqCtx, gen, id, m, task, err)
		s.finish(sess, token, p, task, err)
	})
	return p
}

// mutable returns the visible, confirmed entry for id. Callers hold s.mu.
func (s *Store) mutable(id string) (*entry, error) {
	e, ok := s.entries[id]
	if !ok || e.hidden {
		return nil, fmt.Errorf("%w: task %s", common.ErrorNotFound, id)
	}
	if e.placeholder {
		return nil, common.ErrEntryPending
	}
	return e, nil
}

func (s *Store) newMutation(k kind, before models.Task, index int) *mutation {
	s.seq++
	return &mutation{seq: s.seq, kind: k, before: before, index: index}
}

func (s *Store) indexOf(id string) int {
	for i, v := range s.order {
		if v == id {
			return i
		}
	}
	return -1
}

// enqueue runs call after every call previously enqueued for the same id.
// Callers hold s.mu.
func (s *Store) enqueue(id string, call func()) {
	prev := s.lanes[id]
	done := make(chan struct{})
	s.lanes[id] = done

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if prev != nil {
			<-prev
		}

		call()

		s.mu.Lock()
		if s.lanes[id] == done {
			delete(s.lanes, id)
		}
		s.mu.Unlock()
		close(done)
	}()
}

// finish completes the handle and signs the session out on an auth error.
// It runs without s.mu held.
func (s *Store) finish(sess Session, token string, p *Pending, task *models.Task, err error) {
	if err != nil && common.KindOf(err) == common.KindAuth {
		sess.Reject(token)
	}
	p.complete(task, err)
}
