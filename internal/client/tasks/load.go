package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// Load replaces the view with the server's list. Entries changed locally
// since the request went out keep their local state, so a list fetched
// before a mutation settled cannot overwrite it.
func (s *Store) Load(ctx context.Context, sess Session) error {
	token, err := sess.Token()
	if err != nil {
		return err
	}

	s.mu.Lock()
	start, gen := s.seq, s.gen
	s.mu.Unlock()

	list, err := s.api.ListTasks(ctx, token)
	if err != nil {
		if common.KindOf(err) == common.KindAuth {
			sess.Reject(token)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}
	s.merge(list, start)
	return nil
}

func (s *Store) merge(list []models.Task, start uint64) {
	local := func(e *entry) bool {
		return e.placeholder || len(e.log) > 0 || e.touched > start
	}

	listed := make(map[string]struct{}, len(list))
	for _, t := range list {
		listed[t.ID] = struct{}{}
	}

	entries := make(map[string]*entry, len(list))
	order := make([]string, 0, len(list))

	// Local entries the server did not report yet stay on top.
	for _, id := range s.order {
		e := s.entries[id]
		if _, ok := listed[id]; !ok && local(e) {
			entries[id] = e
			order = append(order, id)
		}
	}
	// Hidden entries with a delete in flight must survive for a rollback.
	for id, e := range s.entries {
		if _, ok := listed[id]; !ok && e.hidden && len(e.log) > 0 {
			entries[id] = e
		}
	}

	for _, t := range list {
		if seq, ok := s.removed[t.ID]; ok && seq > start {
			continue
		}
		if e, ok := s.entries[t.ID]; ok && local(e) {
			entries[t.ID] = e
			if !e.hidden {
				order = append(order, t.ID)
			}
			continue
		}
		entries[t.ID] = &entry{task: t}
		order = append(order, t.ID)
	}

	for id, seq := range s.removed {
		if seq <= start {
			delete(s.removed, id)
		}
	}

	s.entries = entries
	s.order = order
}
