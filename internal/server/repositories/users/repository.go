package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository is the credential store: one record per user.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}
