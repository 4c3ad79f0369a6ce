package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/validator"
	"github.com/google/uuid"
)

// TaskService exposes owner-scoped task operations. Ownership is checked by
// the repository on every call.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// List returns the user's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]*models.Task, error) {
	tasks, err := s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, userID, title, description string) (*models.Task, error) {
	task := &models.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      models.TaskStatusPending,
	}

	v := validator.New()
	v.CheckTitle(task.Title)
	v.CheckDescription(task.Description)
	if err := v.Err(); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// Update applies a partial update. An empty patch returns the task unchanged.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	v := validator.New()
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
		v.CheckTitle(title)
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		patch.Description = &description
		v.CheckDescription(description)
	}
	if patch.Status != nil {
		v.CheckStatus(string(*patch.Status))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if !isTaskID(taskID) {
		return nil, common.ErrorNotFound
	}

	task, err := s.repomanager.Tasks(s.db).Update(ctx, userID, taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return task, nil
}

// Delete removes the task. Deleting a missing task reports common.ErrorNotFound.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if !isTaskID(taskID) {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Tasks(s.db).Delete(ctx, userID, taskID); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

// isTaskID filters ids the uuid column could never hold.
func isTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
