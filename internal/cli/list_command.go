package cli

import (
	"context"
	"strings"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute prints every task. When args are given they are joined into a task
// name and only the stored task with that name is printed.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if name := strings.TrimSpace(strings.Join(args, " ")); name != "" {
		return c.findTask(ctx, name)
	}

	tasks, err := c.app.taskService(ctx)
	if err != nil {
		return err
	}

	list := tasks.Tasks()
	if len(list) == 0 {
		c.app.println("No tasks found")
		return nil
	}
	for i := range list {
		c.app.printf("%d) %s\n", i+1, list[i].Summary(c.app.style))
	}
	return nil
}

func (c *ListCommand) findTask(ctx context.Context, name string) error {
	task, err := c.app.api.FindTask(ctx, name)
	if err != nil {
		return c.app.errs.Handle("find task", err)
	}
	c.app.println(task.Summary(c.app.style))
	return nil
}
