package client

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/client/models"
)

// Client is the REST API as seen by the session and the task store. The
// token is passed on every authenticated call; the client keeps no identity.
type Client interface {
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Me(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error)

	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token, title, description string) (*models.Task, error)
	UpdateTask(ctx context.Context, token, id string, update models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error

	Ping(ctx context.Context) error
}
