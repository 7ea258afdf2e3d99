// Package models defines the client-side view of API resources.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Task mirrors the task representation returned by the API.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewTask is the body of a create request.
type NewTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status,omitempty"`
}

// TaskPatch is the body of an update request; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Status == nil
}

// String renders a task as a single line for terminal listings.
func (t Task) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s]  %s", t.ID, t.Status, t.Title)
	if t.DueDate != nil {
		fmt.Fprintf(&b, "  (due %s)", t.DueDate.Format(time.DateOnly))
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n    %s", t.Description)
	}
	return b.String()
}
