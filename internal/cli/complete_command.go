package cli

import (
	"context"
	"strings"

	"task-manager/internal/errors"
)

// CompleteCommand handles the complete command
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute marks the task named by args as completed
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return errors.NewInvalidInputError("name", name, "usage: tasks complete NAME")
	}

	tasks, err := c.app.taskService(ctx)
	if err != nil {
		return err
	}

	task, ok := tasks.Find(name)
	if !ok {
		return c.app.errs.Handle("complete task", errors.NewNotFoundError("task", name))
	}
	if task.IsCompleted() {
		return c.app.errs.Handle("complete task", errors.NewInvalidInputError("name", name, "task is already completed"))
	}

	if _, err := tasks.CompleteTask(ctx, task); err != nil {
		return c.app.errs.Handle("complete task", err)
	}

	c.app.printf("Completed task: %s\n", task.Summary(c.app.style))
	return nil
}
