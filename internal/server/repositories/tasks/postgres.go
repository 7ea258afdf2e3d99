package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amanda-parkwaylabs/task-manager/internal/common"
	"github.com/amanda-parkwaylabs/task-manager/internal/dbx"
	"github.com/amanda-parkwaylabs/task-manager/internal/server/models"
)

const taskColumns = `id, title, description, due_date, status, created_by, created_at`

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t   models.Task
		due sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Status, &t.CreatedBy, &t.CreatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return &t, nil
}

// Create inserts task and fills in its creation time.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (id, title, description, due_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, dbx.Nullable(task.DueDate), task.Status, task.CreatedBy).
		Scan(&task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return task, nil
}

// FindMany returns the tasks inside filter, oldest first.
func (r *PostgresRepository) FindMany(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if filter.CreatedBy != "" {
		query += ` WHERE created_by = $1`
		args = append(args, filter.CreatedBy)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// UpdateByID applies patch to the task with id inside filter in a single
// statement and returns the updated row.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, filter models.TaskFilter, patch models.TaskPatch) (*models.Task, error) {
	query := `
		UPDATE tasks SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			due_date = CASE WHEN $6 THEN NULL ELSE COALESCE($4, due_date) END,
			status = COALESCE($5, status)
		WHERE id = $1`
	args := []any{id,
		dbx.Nullable(patch.Title), dbx.Nullable(patch.Description), dbx.Nullable(patch.DueDate), dbx.Nullable(patch.Status),
		patch.ClearDueDate}
	if filter.CreatedBy != "" {
		query += ` AND created_by = $7`
		args = append(args, filter.CreatedBy)
	}
	query += ` RETURNING ` + taskColumns

	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// DeleteByID removes the task with id inside filter. It reports whether a
// row was deleted.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string, filter models.TaskFilter) (bool, error) {
	query := `DELETE FROM tasks WHERE id = $1`
	args := []any{id}
	if filter.CreatedBy != "" {
		query += ` AND created_by = $2`
		args = append(args, filter.CreatedBy)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}
