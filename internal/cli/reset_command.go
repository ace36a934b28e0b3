package cli

import (
	"context"
	"strings"
)

// ResetCommand handles the reset command
type ResetCommand struct {
	app   *App
	force bool
}

// NewResetCommand creates a new reset command handler. Unless force is set
// the user is asked to confirm first.
func NewResetCommand(app *App, force bool) *ResetCommand {
	return &ResetCommand{app: app, force: force}
}

// Execute deletes every stored task
func (c *ResetCommand) Execute(ctx context.Context, args []string) error {
	if !c.force {
		c.app.printf("Delete all tasks? This cannot be undone. [y/N]: ")
		line, err := c.app.readLine()
		if err != nil {
			c.app.println()
			c.app.println("Reset cancelled.")
			return nil
		}
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			c.app.println("Reset cancelled.")
			return nil
		}
	}

	n, err := c.app.api.ResetTasks(ctx)
	if err != nil {
		return c.app.errs.Handle("reset tasks", err)
	}

	c.app.printf("Deleted %d tasks\n", n)
	return nil
}
