package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/logging"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/auth"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// TaskInput is the caller-supplied part of a new task. Ownership and id are
// never taken from the caller.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      string
}

// TaskService runs task operations on behalf of an authenticated identity,
// scoping every store call through the ownership filter.
type TaskService struct {
	tasks  tasks.Repository
	filter auth.OwnershipFilter
	logger logging.Logger
}

func NewTaskService(repo tasks.Repository, logger logging.Logger) *TaskService {
	return &TaskService{tasks: repo, logger: logger.With("module", "tasks")}
}

// Create stores a new task owned by id.
func (s *TaskService) Create(ctx context.Context, id auth.Identity, in TaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationError("title is required")
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.DefaultTaskStatus
	}

	t, err := s.tasks.Create(ctx, &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		CreatedBy:   id.SubjectID,
	})
	if err != nil {
		return nil, storeError(ctx, s.logger, "task.create", err)
	}
	return t, nil
}

// List returns the tasks visible to id.
func (s *TaskService) List(ctx context.Context, id auth.Identity) ([]*models.Task, error) {
	ts, err := s.tasks.FindMany(ctx, s.filter.Scope(id, auth.OpTaskList))
	if err != nil {
		return nil, storeError(ctx, s.logger, "task.list", err)
	}
	return ts, nil
}

// Update applies patch to the task taskID if it lies in id's scope.
func (s *TaskService) Update(ctx context.Context, id auth.Identity, taskID string, patch models.TaskPatch) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrTaskNotFound
	}
	if err := validatePatch(&patch); err != nil {
		return nil, err
	}

	t, err := s.tasks.UpdateByID(ctx, taskID, s.filter.Scope(id, auth.OpTaskUpdate), patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, storeError(ctx, s.logger, "task.update", err)
	}
	return t, nil
}

// Delete removes the task taskID if it lies in id's scope.
func (s *TaskService) Delete(ctx context.Context, id auth.Identity, taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return ErrTaskNotFound
	}

	ok, err := s.tasks.DeleteByID(ctx, taskID, s.filter.Scope(id, auth.OpTaskDelete))
	if err != nil {
		return storeError(ctx, s.logger, "task.delete", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

func validatePatch(p *models.TaskPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return validationError("title must not be blank")
		}
		p.Title = &title
	}
	if p.Status != nil {
		status := strings.TrimSpace(*p.Status)
		if status == "" {
			return validationError("status must not be blank")
		}
		p.Status = &status
	}
	return nil
}
