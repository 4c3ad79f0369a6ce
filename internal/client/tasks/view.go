package tasks

import (
	"math"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
)

// StatusFilter selects tasks by status; FilterAll matches every task.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = StatusFilter(models.TaskStatusPending)
	FilterCompleted StatusFilter = StatusFilter(models.TaskStatusCompleted)
)

func (f StatusFilter) matches(s models.TaskStatus) bool {
	return f == "" || f == FilterAll || string(f) == string(s)
}

// Filter returns visible tasks whose title contains query, case
// insensitively, and whose status matches. It does not change the store.
func (s *Store) Filter(query string, status StatusFilter) []models.Task {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Task, 0)
	for _, t := range s.Tasks() {
		if !status.matches(t.Status) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

type Stats struct {
	Total     int
	Completed int
	Pending   int
	// CompletionRate is a rounded percentage, 0 for an empty list.
	CompletionRate int
}

func (s *Store) Stats() Stats {
	var st Stats
	for _, t := range s.Tasks() {
		st.Total++
		if t.Status == models.TaskStatusCompleted {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) * 100 / float64(st.Total)))
	}
	return st
}
