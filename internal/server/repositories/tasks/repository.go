package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository stores tasks scoped by owner. Every method takes the owner id;
// a task owned by someone else is reported as common.ErrorNotFound.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}
