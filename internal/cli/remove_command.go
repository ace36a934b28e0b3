package cli

import (
	"context"
	"strings"

	"task-manager/internal/errors"
)

// RemoveCommand handles the remove command
type RemoveCommand struct {
	app *App
}

// NewRemoveCommand creates a new remove command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{app: app}
}

// Execute removes the task named by args
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return errors.NewInvalidInputError("name", name, "usage: tasks remove NAME")
	}

	tasks, err := c.app.taskService(ctx)
	if err != nil {
		return err
	}

	task, ok := tasks.Find(name)
	if !ok {
		return c.app.errs.Handle("remove task", errors.NewNotFoundError("task", name))
	}

	if _, err := tasks.RemoveTask(ctx, task); err != nil {
		return c.app.errs.Handle("remove task", err)
	}

	c.app.printf("Removed task: %s\n", task.Name())
	return nil
}
