// Package tasks is the task store. Every read and mutation takes a
// models.TaskFilter so ownership scoping is enforced by the store itself.
package tasks

import (
	"context"

	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
)

// Repository persists tasks.
//
// UpdateByID returns common.ErrorNotFound when no task with id lies inside
// filter; DeleteByID reports false in the same situation.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	FindMany(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error)
	UpdateByID(ctx context.Context, id string, filter models.TaskFilter, patch models.TaskPatch) (*models.Task, error)
	DeleteByID(ctx context.Context, id string, filter models.TaskFilter) (bool, error)
}
