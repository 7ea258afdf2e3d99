// Package memory holds thread-safe in-memory stores used when the server
// runs without a database, and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
)

// UserRepository is an in-memory users.Repository keyed by email.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
	now     func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]models.User), now: time.Now}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	user.CreatedAt = r.now().UTC()
	r.byEmail[user.Email] = *user
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
