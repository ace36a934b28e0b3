package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"task-manager/internal/errors"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app    *App
	format string
	path   string
}

// NewExportCommand creates a new export command handler. An empty path writes
// to the command output.
func NewExportCommand(app *App, format, path string) *ExportCommand {
	return &ExportCommand{app: app, format: format, path: path}
}

// Execute writes every stored task. format=FORMAT and out=FILE arguments
// override the options the command was created with.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	format, path := c.format, c.path
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "format="):
			format = strings.TrimPrefix(arg, "format=")
		case strings.HasPrefix(arg, "out="):
			path = strings.TrimPrefix(arg, "out=")
		default:
			return errors.NewInvalidInputError("argument", arg, "usage: tasks export format=json|csv|pdf [out=FILE]")
		}
	}

	if path == "" {
		if err := c.app.exporter.Export(ctx, format, c.app.out); err != nil {
			return c.app.errs.Handle("export tasks", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return c.app.errs.Handle("export tasks", err)
	}
	if err := c.app.exporter.Export(ctx, format, f); err != nil {
		f.Close()
		os.Remove(path)
		return c.app.errs.Handle("export tasks", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	c.app.printf("Exported tasks to %s\n", path)
	return nil
}
