package repomanager

import (
	"context"

	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/memory"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/tasks"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps all data in process memory. Nothing
// survives a restart.
type InMemoryRepositoryManager struct {
	users *memory.UserRepository
	tasks *memory.TaskRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: memory.NewUserRepository(),
		tasks: memory.NewTaskRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository { return m.tasks }

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error { return ctx.Err() }

func (m *InMemoryRepositoryManager) Close() error { return nil }
