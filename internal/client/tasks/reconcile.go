package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// settle reconciles an update or delete of a confirmed entry.
func (s *Store) settle(ctx context.Context, gen uint64, id string, m *mutation, task *models.Task, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	e, ok := s.entries[id]
	if !ok {
		return
	}
	newest := e.pop(m)

	// Stamp the outcome so a list requested before it cannot overwrite it.
	s.seq++
	e.touched = s.seq

	if err == nil {
		switch {
		case m.kind == kindDelete:
			s.drop(id)
			s.removed[id] = s.seq
		case newest && task != nil:
			e.task = *task
		}
		return
	}

	s.logger.Warn(ctx, "task change rolled back", "task_id", id, "error", err)

	// The server no longer has it; keeping it would never converge.
	if common.KindOf(err) == common.KindNotFound {
		s.drop(id)
		s.removed[id] = s.seq
		return
	}

	e.revert(m)
	if m.kind == kindDelete {
		s.reinsert(id, m)
	}
}

// settleCreate swaps the placeholder for the confirmed task in place, or
// removes it on failure.
func (s *Store) settleCreate(ctx context.Context, gen uint64, placeholder string, task *models.Task, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	if _, ok := s.entries[placeholder]; !ok {
		return
	}

	if err != nil {
		s.logger.Warn(ctx, "task create rolled back", "error", err)
		s.drop(placeholder)
		return
	}

	i := s.indexOf(placeholder)
	delete(s.entries, placeholder)

	// A concurrent Load may already have brought the confirmed task in.
	if _, ok := s.entries[task.ID]; ok {
		s.order = append(s.order[:i], s.order[i+1:]...)
		return
	}

	// A list requested before now may not contain the task yet.
	s.seq++
	s.entries[task.ID] = &entry{task: *task, touched: s.seq}
	s.order[i] = task.ID
}

// drop removes id from both the arena and the visible order.
func (s *Store) drop(id string) {
	delete(s.entries, id)
	if i := s.indexOf(id); i >= 0 {
		s.order = append(s.order[:i], s.order[i+1:]...)
	}
}

// reinsert puts a deleted entry back in front of the entry that followed
// it, or at its old index when that neighbour is gone.
func (s *Store) reinsert(id string, m *mutation) {
	if m.next != "" {
		if i := s.indexOf(m.next); i >= 0 {
			s.insertAt(id, i)
			return
		}
	}
	s.insertAt(id, m.index)
}

// insertAt puts id back at index, clamped to the current list length.
func (s *Store) insertAt(id string, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(s.order) {
		index = len(s.order)
	}
	s.order = append(s.order, "")
	copy(s.order[index+1:], s.order[index:])
	s.order[index] = id
}
