package tasks

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
)

type result struct {
	task  *models.Task
	tasks []models.Task
	err   error
}

// call is one request captured by fakeAPI; the test decides its outcome.
type call struct {
	op          string
	token       string
	id          string
	title       string
	description string
	update      models.TaskUpdate
	reply       chan result
}

func (c *call) ok(task models.Task) { c.reply <- result{task: &task} }
func (c *call) done()               { c.reply <- result{} }
func (c *call) list(ts ...models.Task) {
	c.reply <- result{tasks: ts}
}
func (c *call) fail(err error) { c.reply <- result{err: err} }

type fakeAPI struct {
	calls chan *call
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(chan *call, 16)}
}

func (f *fakeAPI) send(c *call) result {
	c.reply = make(chan result, 1)
	f.calls <- c
	return <-c.reply
}

func (f *fakeAPI) ListTasks(ctx context.Context, token string) ([]models.Task, error) {
	r := f.send(&call{op: "list", token: token})
	return r.tasks, r.err
}

func (f *fakeAPI) CreateTask(ctx context.Context, token, title, description string) (*models.Task, error) {
	r := f.send(&call{op: "create", token: token, title: title, description: description})
	return r.task, r.err
}

func (f *fakeAPI) UpdateTask(ctx context.Context, token, id string, update models.TaskUpdate) (*models.Task, error) {
	r := f.send(&call{op: "update", token: token, id: id, update: update})
	return r.task, r.err
}

func (f *fakeAPI) DeleteTask(ctx context.Context, token, id string) error {
	r := f.send(&call{op: "delete", token: token, id: id})
	return r.err
}

func (f *fakeAPI) next(t *testing.T) *call {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a request")
		return nil
	}
}

func (f *fakeAPI) quiet(t *testing.T) {
	t.Helper()
	select {
	case c := <-f.calls:
		t.Fatalf("unexpected %s request for %q", c.op, c.id)
	case <-time.After(50 * time.Millisecond):
	}
}

type fakeSession struct {
	mu       sync.Mutex
	token    string
	rejected []string
}

func (s *fakeSession) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", common.ErrNotAuthenticated
	}
	return s.token, nil
}

func (s *fakeSession) Reject(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected = append(s.rejected, token)
}

func newStore(t *testing.T) (*Store, *fakeAPI, *fakeSession) {
	t.Helper()
	api := newFakeAPI()
	s := NewStore(api, logging.Nop())
	return s, api, &fakeSession{token: "T"}
}

func task(id, title string, status models.TaskStatus) models.Task {
	return models.Task{ID: id, Title: title, Status: status, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// seed installs confirmed tasks as if a Load had just completed.
func seed(s *Store, ts ...models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merge(ts, s.seq)
}

func ids(ts []models.Task) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func wait(t *testing.T, p *Pending) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.Wait(ctx)
}

var (
	errServer       = fmt.Errorf("%w: status 500: Internal server error", common.ErrorInternal)
	errUnauthorized = fmt.Errorf("%w: Not authorized", common.ErrorUnauthorized)
	errNotFound     = fmt.Errorf("%w: Task not found", common.ErrorNotFound)
)
