// Package httpapi is the gin HTTP transport of the todo API.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// UserService is implemented by services.UserService.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]*models.User, error)
}

// TaskService is implemented by services.TaskService.
type TaskService interface {
	List(ctx context.Context, caller *auth.Identity, skip, limit int) ([]*models.Task, error)
	Get(ctx context.Context, caller *auth.Identity, id string) (*models.Task, error)
	Create(ctx context.Context, caller *auth.Identity, in models.TaskCreate) (*models.Task, error)
	Update(ctx context.Context, caller *auth.Identity, id string, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, caller *auth.Identity, id string) error
}

// Authenticator is implemented by auth.Guard.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*auth.Identity, error)
}

// Pinger reports database liveness; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}
