package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
)

// TaskRepository is an in-memory tasks.Repository. Listing preserves
// insertion order.
type TaskRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Task
	now   func() time.Time
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{byID: make(map[string]models.Task), now: time.Now}
}

func cloneTask(t models.Task) *models.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return &t
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[task.ID]; ok {
		return nil, common.ErrAlreadyExists
	}
	task.CreatedAt = r.now().UTC()
	r.byID[task.ID] = *cloneTask(*task)
	r.order = append(r.order, task.ID)
	return task, nil
}

func (r *TaskRepository) FindMany(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Task, 0, len(r.order))
	for _, id := range r.order {
		t := r.byID[id]
		if filter.Matches(&t) {
			result = append(result, cloneTask(t))
		}
	}
	return result, nil
}

func (r *TaskRepository) UpdateByID(ctx context.Context, id string, filter models.TaskFilter, patch models.TaskPatch) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok || !filter.Matches(&t) {
		return nil, common.ErrorNotFound
	}
	updated := patch.Apply(t)
	r.byID[id] = updated
	return cloneTask(updated), nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id string, filter models.TaskFilter) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok || !filter.Matches(&t) {
		return false, nil
	}
	delete(r.byID, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true, nil
}
