// Package repomanager selects and owns the storage backend: it vends the
// users and tasks repositories and reports backend health.
package repomanager

import (
	"context"

	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/tasks"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Tasks() tasks.Repository
	Ping(ctx context.Context) error
	Close() error
}

// New returns the in-memory manager for an empty dsn and a PostgreSQL one
// otherwise.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewInMemoryRepositoryManager(), nil
	}
	m, err := OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}
