package tasks

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository stores todo items. Get, GetForUpdate, Update and Delete return
// common.ErrorNotFound when the id does not exist. Ownership is not checked
// here; callers compare Task.UserID with the authenticated identity.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	GetForUpdate(ctx context.Context, id string) (*models.Task, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}
