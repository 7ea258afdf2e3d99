package cli

import (
	"context"

	"github.com/amanda-parkwaylabs/task-manager/internal/client/models"
)

func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return a.report("Add", err)
	}
	desc, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return a.report("Add", err)
	}
	dueText, err := GetSimpleText(a.reader, "Due date YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return a.report("Add", err)
	}
	due, err := ParseDueDate(dueText)
	if err != nil {
		return a.report("Add", err)
	}

	task, err := a.api.CreateTask(ctx, a.token, models.NewTask{Title: title, Description: desc, DueDate: due})
	if err != nil {
		return a.report("Add", err)
	}
	a.printf("Created %s", task.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	tasks, err := a.api.ListTasks(ctx, a.token)
	if err != nil {
		return a.report("List", err)
	}
	if len(tasks) == 0 {
		a.printf("No tasks")
		return nil
	}
	for _, t := range tasks {
		a.printf("%s", t)
	}
	return nil
}

func (a *App) Update(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	var p models.TaskPatch
	var err error
	if p.Title, err = GetOptionalText(a.reader, "New title", a.out); err != nil {
		return a.report("Update", err)
	}
	if p.Description, err = GetOptionalText(a.reader, "New description", a.out); err != nil {
		return a.report("Update", err)
	}
	if p.Status, err = GetOptionalText(a.reader, "New status", a.out); err != nil {
		return a.report("Update", err)
	}
	dueText, err := GetOptionalText(a.reader, "New due date YYYY-MM-DD", a.out)
	if err != nil {
		return a.report("Update", err)
	}
	if dueText != nil {
		if p.DueDate, err = ParseDueDate(*dueText); err != nil {
			return a.report("Update", err)
		}
	}
	if p.IsEmpty() {
		a.printf("Nothing to update")
		return nil
	}

	task, err := a.api.UpdateTask(ctx, a.token, id, p)
	if err != nil {
		return a.report("Update", err)
	}
	a.printf("%s", task)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	msg, err := a.api.DeleteTask(ctx, a.token, id)
	if err != nil {
		return a.report("Delete", err)
	}
	a.printf("%s", msg)
	return nil
}
