package tasks

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, s *Store, sess Session) chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background(), sess) }()
	return done
}

func TestLoad_ReplacesConfirmedEntries(t *testing.T) {
	s, api, sess := newStore(t)
	seed(s, task("gone", "gone", pending), task("a", "stale title", pending))

	done := load(t, s, sess)
	c := api.next(t)
	assert.Equal(t, "list", c.op)
	c.list(task("b", "b", pending), task("a", "a", completed))
	require.NoError(t, <-done)

	assert.Equal(t, []string{"b", "a"}, ids(s.Tasks()))
	got, _ := s.Get("a")
	assert.Equal(t, task("a", "a", completed), got)
}

func TestLoad_KeepsInFlightEntries(t *testing.T) {
	s, api, sess := newStore(t)
	seed(s, task("a", "a", pending), task("b", "b", pending), task("c", "c", pending))
	ctx := context.Background()

	pt, err := s.Toggle(ctx, sess, "a")
	require.NoError(t, err)
	pd, err := s.Delete(ctx, sess, "b")
	require.NoError(t, err)
	pc, err := s.Create(ctx, sess, "fresh", "")
	require.NoError(t, err)

	inflight := map[string]*call{}
	for i := 0; i < 3; i++ {
		c := api.next(t)
		inflight[c.op] = c
	}

	done := load(t, s, sess)
	api.next(t).list(task("a", "a", pending), task("b", "b", pending), task("c", "c", pending))
	require.NoError(t, <-done)

	list := s.Tasks()
	require.Len(t, list, 3)
	assert.Equal(t, "fresh", list[0].Title)
	assert.Equal(t, []string{"a", "c"}, ids(list[1:]))
	got, _ := s.Get("a")
	assert.Equal(t, completed, got.Status, "optimistic toggle survives a reload")

	inflight["delete"].fail(errServer)
	require.Error(t, wait(t, pd))
	inflight["update"].ok(task("a", "a", completed))
	require.NoError(t, wait(t, pt))
	inflight["create"].ok(task("n", "fresh", pending))
	require.NoError(t, wait(t, pc))

	assert.Equal(t, []string{"n", "a", "b", "c"}, ids(s.Tasks()))
}

func TestLoad_StaleListDoesNotUndoSettledChanges(t *testing.T) {
	s, api, sess := newStore(t)
	seed(s, task("a", "a", pending), task("b", "b", pending))
	ctx := context.Background()

	done := load(t, s, sess)
	list := api.next(t)

	pt, err := s.Toggle(ctx, sess, "a")
	require.NoError(t, err)
	api.next(t).ok(task("a", "a", completed))
	require.NoError(t, wait(t, pt))

	pd, err := s.Delete(ctx, sess, "b")
	require.NoError(t, err)
	api.next(t).done()
	require.NoError(t, wait(t, pd))

	// the list was read by the server before either change
	list.list(task("a", "a", pending), task("b", "b", pending))
	require.NoError(t, <-done)

	assert.Equal(t, []string{"a"}, ids(s.Tasks()))
	got, _ := s.Get("a")
	assert.Equal(t, completed, got.Status)
}

func TestLoad_ChangeSettledWhileListInFlight(t *testing.T) {
	s, api, sess := newStore(t)
	seed(s, task("a", "a", pending))
	ctx := context.Background()

	pt, err := s.Toggle(ctx, sess, "a")
	require.NoError(t, err)
	toggle := api.next(t)

	done := load(t, s, sess)
	list := api.next(t)

	toggle.ok(task("a", "a", completed))
	require.NoError(t, wait(t, pt))

	// the server read the list before applying the toggle
	list.list(task("a", "a", pending))
	require.NoError(t, <-done)

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, completed, got.Status)
}

func TestLoad_DeleteSettledWhileListInFlight(t *testing.T) {
	s, api, sess := newStore(t)
	seed(s, task("a", "a", pending), task("b", "b", pending))
	ctx := context.Background()

	pd, err := s.Delete(ctx, sess, "a")
	require.NoError(t, err)
	del := api.next(t)

	done := load(t, s, sess)
	list := api.next(t)

	del.done()
	require.NoError(t, wait(t, pd))

	list.list(task("a", "a", pending), task("b", "b", pending))
	require.NoError(t, <-done)

	assert.Equal(t, []string{"b"}, ids(s.Tasks()))
}

func TestLoad_NotFoundSettledWhileListInFlight(t *testing.T) {
	s, api, sess := newStore(t)
	seed(s, task("a", "a", pending), task("b", "b", pending))
	ctx := context.Background()

	pr, err := s.Rename(ctx, sess, "a", "renamed")
	require.NoError(t, err)
	rename := api.next(t)

	done := load(t, s, sess)
	list := api.next(t)

	rename.fail(errNotFound)
	require.ErrorIs(t, wait(t, pr), common.ErrorNotFound)

	list.list(task("a", "a", pending), task("b", "b", pending))
	require.NoError(t, <-done)

	assert.Equal(t, []string{"b"}, ids(s.Tasks()))
}

func TestLoad_CreateConfirmedByLoadFirst(t *testing.T) {
	s, api, sess := newStore(t)
	ctx := context.Background()

	pc, err := s.Create(ctx, sess, "fresh", "")
	require.NoError(t, err)
	create := api.next(t)

	done := load(t, s, sess)
	api.next(t).list(task("n", "fresh", pending))
	require.NoError(t, <-done)
	require.Len(t, s.Tasks(), 2)

	create.ok(task("n", "fresh", pending))
	require.NoError(t, wait(t, pc))

	assert.Equal(t, []string{"n"}, ids(s.Tasks()))
}

func TestLoad_Errors(t *testing.T) {
	s, api, sess := newStore(t)
	seed(s, task("a", "a", pending))

	done := load(t, s, sess)
	api.next(t).fail(errServer)
	require.ErrorIs(t, <-done, common.ErrorInternal)
	assert.Equal(t, []string{"a"}, ids(s.Tasks()))
	assert.Empty(t, sess.rejected)

	done = load(t, s, sess)
	api.next(t).fail(errUnauthorized)
	assert.Equal(t, common.KindAuth, common.KindOf(<-done))
	assert.Equal(t, []string{"T"}, sess.rejected)
}

func TestLoad_DiscardedAfterClear(t *testing.T) {
	s, api, sess := newStore(t)

	done := load(t, s, sess)
	c := api.next(t)
	s.Clear()
	c.list(task("a", "a", pending))
	require.NoError(t, <-done)

	assert.Empty(t, s.Tasks())
}
