package users

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository is the persistence interface for user records.
//
// Create fails with common.ErrDuplicateEmail when the email is taken;
// lookups fail with common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
}
