package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/client/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

var errUsage = errors.New("usage")

// List prints the visible tasks, optionally narrowed:
//
//	list [all|pending|completed] [text...]
func (a *App) List(ctx context.Context, args []string) error {
	status := tasks.FilterAll
	if len(args) > 0 {
		switch f := tasks.StatusFilter(args[0]); f {
		case tasks.FilterAll, tasks.FilterPending, tasks.FilterCompleted:
			status = f
			args = args[1:]
		}
	}

	list := a.store.Filter(strings.Join(args, " "), status)

	a.listed = a.listed[:0]
	if len(list) == 0 {
		a.println("No tasks")
	}
	for i, t := range list {
		a.listed = append(a.listed, t.ID)
		a.println(formatTask(i+1, t, a.store.IsPending(t.ID)))
	}
	return a.Stats(ctx)
}

func formatTask(n int, t models.Task, syncing bool) string {
	mark := " "
	if t.Status == models.TaskStatusCompleted {
		mark = "x"
	}
	line := fmt.Sprintf("%3d. [%s] %s", n, mark, t.Title)
	if t.Description != "" {
		line += " - " + t.Description
	}
	if syncing {
		line += " (syncing)"
	}
	return line
}

func (a *App) Stats(_ context.Context) error {
	st := a.store.Stats()
	a.printf("%d tasks, %d completed, %d pending (%d%% done)\n", st.Total, st.Completed, st.Pending, st.CompletionRate)
	return nil
}

// Add creates a task from the arguments, or prompts when there are none.
func (a *App) Add(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	description := ""
	if len(args) == 0 {
		var err error
		if title, err = getSimpleText(a.reader, "Enter title", a.out); err != nil {
			return err
		}
		if description, err = getSimpleText(a.reader, "Enter description (optional)", a.out); err != nil {
			return err
		}
	}

	p, err := a.store.Create(ctx, a.session, title, description)
	if err != nil {
		a.println("Not added:", describe(err))
		return err
	}
	a.track(ctx, p, "add task")
	return nil
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	t, err := a.resolve(args)
	if err != nil {
		return err
	}

	p, err := a.store.Toggle(ctx, a.session, t.ID)
	if err != nil {
		a.println("Not changed:", describe(err))
		return err
	}
	a.track(ctx, p, "update "+strconv.Quote(t.Title))
	return nil
}

// Rename takes the task reference and the new title: rename <n> <title...>.
func (a *App) Rename(ctx context.Context, args []string) error {
	t, err := a.resolve(args)
	if err != nil {
		return err
	}

	p, err := a.store.Rename(ctx, a.session, t.ID, strings.Join(args[1:], " "))
	if err != nil {
		a.println("Not renamed:", describe(err))
		return err
	}
	a.track(ctx, p, "rename "+strconv.Quote(t.Title))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	t, err := a.resolve(args)
	if err != nil {
		return err
	}

	p, err := a.store.Delete(ctx, a.session, t.ID)
	if err != nil {
		a.println("Not deleted:", describe(err))
		return err
	}
	a.track(ctx, p, "delete "+strconv.Quote(t.Title))
	return nil
}

// Reload replaces the view with the server's list.
func (a *App) Reload(ctx context.Context) error {
	if err := a.store.Load(ctx, a.session); err != nil {
		a.println("Could not load tasks:", describe(err))
		return err
	}
	return nil
}

// resolve finds the task named by args[0]: a number from the last list,
// a full id or a unique id prefix.
func (a *App) resolve(args []string) (models.Task, error) {
	if len(args) == 0 {
		a.println("Which task? Give its number from 'list' or its id")
		return models.Task{}, errUsage
	}
	ref := args[0]

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(a.listed) {
			if t, ok := a.store.Get(a.listed[n-1]); ok {
				return t, nil
			}
		}
	} else {
		var match []models.Task
		for _, t := range a.store.Tasks() {
			if t.ID == ref {
				return t, nil
			}
			if strings.HasPrefix(t.ID, ref) {
				match = append(match, t)
			}
		}
		if len(match) == 1 {
			return match[0], nil
		}
	}

	a.println("No such task:", ref)
	return models.Task{}, fmt.Errorf("%w: task %s", common.ErrorNotFound, ref)
}
