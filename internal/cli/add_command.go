package cli

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute runs the add command. args are the task name and its due date.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: tasks add NAME MM-DD-YYYY")
	}

	task, err := domain.NewTask(args[0], args[1])
	if err != nil {
		return c.app.errs.Handle("add task", err)
	}

	tasks, err := c.app.taskService(ctx)
	if err != nil {
		return err
	}

	added, err := tasks.AddTask(ctx, task)
	if err != nil {
		return c.app.errs.Handle("add task", err)
	}
	if !added {
		return c.app.errs.Handle("add task", errors.NewConflictError("task", task.Name()))
	}

	c.app.printf("Added task: %s\n", task.Summary(c.app.style))
	return nil
}
