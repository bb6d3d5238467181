package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Identity is the live user a request acts as. It exists for one request and
// is never persisted.
type Identity struct {
	UserID string
	Email  string
}

// UserFinder is the slice of the user repository the resolver needs.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Resolver turns verified claims into an Identity.
type Resolver struct {
	users UserFinder
}

func NewResolver(users UserFinder) *Resolver {
	return &Resolver{users: users}
}

// Resolve loads the claim subject on every call, so tokens of deleted users
// stop working at once. A missing user yields common.ErrUnknownSubject.
func (r *Resolver) Resolve(ctx context.Context, claims *Claims) (*Identity, error) {
	if claims == nil || claims.Subject == "" {
		return nil, fmt.Errorf("%w: claims carry no subject", common.ErrMalformedToken)
	}

	user, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %s", common.ErrUnknownSubject, claims.Subject)
		}
		return nil, fmt.Errorf("resolve subject: %w", err)
	}

	return &Identity{UserID: user.ID, Email: user.Email}, nil
}
