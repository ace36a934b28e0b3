package cli

import (
	"context"

	"task-manager/internal/server"
)

// ServeCommand runs the REST server until its context is cancelled
type ServeCommand struct {
	app *App
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

// Execute serves the REST API on the configured address
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	srv := server.New(c.app.config.Server, c.app.api, c.app.logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		return c.app.errs.Handle("serve", err)
	}
	return nil
}
