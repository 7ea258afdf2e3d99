// Package models defines server-side data models persisted by the stores.
package models

import "time"

// DefaultTaskStatus is assigned to tasks created without an explicit status.
const DefaultTaskStatus = "pending"

// Task is a unit of work owned by the user that created it.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskPatch carries the fields of a partial task update; nil means unchanged.
// ClearDueDate removes the due date and wins over DueDate.
// ID and CreatedBy are not patchable.
type TaskPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Status       *string
}

// Apply returns a copy of t with the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// TaskFilter narrows task queries and mutations. An empty CreatedBy matches
// every task.
type TaskFilter struct {
	CreatedBy string
}

// Matches reports whether t falls inside the filter.
func (f TaskFilter) Matches(t *Task) bool {
	return f.CreatedBy == "" || t.CreatedBy == f.CreatedBy
}
