package tasks

import "github.com/dmitrijs2005/tasktracker/internal/client/models"

type kind int

const (
	kindCreate kind = iota
	kindStatus
	kindTitle
	kindDelete
)

// mutation is one in-flight change. before is the whole entry as it was
// just before the change was applied. For deletes, index is the visible
// position the entry was removed from and next the id that followed it.
type mutation struct {
	seq    uint64
	kind   kind
	before models.Task
	index  int
	next   string
}

// covers reports whether a failure of m must restore field k.
func (m *mutation) covers(k kind) bool {
	return m.kind == k || m.kind == kindDelete
}

type entry struct {
	task        models.Task
	placeholder bool
	hidden      bool
	log         []*mutation

	// touched is the seq of the newest mutation ever issued on the entry.
	touched uint64
}

func (e *entry) push(m *mutation) {
	e.log = append(e.log, m)
	e.touched = m.seq
}

// pop removes m from the log and reports whether it was the newest.
func (e *entry) pop(m *mutation) (newest bool) {
	for i, v := range e.log {
		if v == m {
			e.log = append(e.log[:i], e.log[i+1:]...)
			return i == len(e.log)
		}
	}
	return false
}

// next returns the oldest in-flight mutation that also covers field k.
func (e *entry) next(k kind) *mutation {
	for _, v := range e.log {
		if v.covers(k) {
			return v
		}
	}
	return nil
}

// revert undoes the field m changed. m must already be popped.
func (e *entry) revert(m *mutation) {
	switch m.kind {
	case kindStatus:
		if n := e.next(kindStatus); n != nil {
			n.before.Status = m.before.Status
		} else {
			e.task.Status = m.before.Status
		}
	case kindTitle:
		if n := e.next(kindTitle); n != nil {
			n.before.Title = m.before.Title
		} else {
			e.task.Title = m.before.Title
		}
	case kindDelete:
		e.task = m.before
		e.hidden = false
	}
}
