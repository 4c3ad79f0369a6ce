package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
)

// Pending is the outcome of a mutation whose request has not settled yet.
// By the time Done is closed the store has already reconciled.
type Pending struct {
	done chan struct{}
	task *models.Task
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) complete(task *models.Task, err error) {
	p.task = task
	p.err = err
	close(p.done)
}

func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait returns the request's error once it settles, or ctx.Err() if ctx
// ends first. Giving up waiting does not cancel the request.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Task is the server's copy after a successful create or update; nil
// before Done is closed and after deletes or failures.
func (p *Pending) Task() *models.Task {
	select {
	case <-p.done:
		return p.task
	default:
		return nil
	}
}
