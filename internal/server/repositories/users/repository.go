// Package users is the credential store: persistence of registered accounts.
package users

import (
	"context"

	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
)

// Repository persists users. Create returns common.ErrAlreadyExists when the
// email is taken; GetUserByEmail returns common.ErrorNotFound when absent.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
