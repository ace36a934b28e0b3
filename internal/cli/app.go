package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/export"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/services"
)

// Deps are the collaborators an App is built from
type Deps struct {
	Repo   repository.TaskRepository
	Config *config.Config
	Logger *slog.Logger
	In     io.Reader
	Out    io.Writer
}

// App represents the main CLI application
type App struct {
	repo     repository.TaskRepository
	api      api.API
	exporter *export.Exporter
	config   *config.Config
	style    domain.StatusStyle
	logger   *slog.Logger
	in       *bufio.Reader
	out      io.Writer
	errs     *ErrorHandler
	registry *CommandRegistry

	// tasks is loaded on first use so that serve never reads the whole store
	tasks services.TaskService
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(deps Deps) (*App, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if deps.In == nil {
		deps.In = strings.NewReader("")
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	style, err := domain.ParseStatusStyle(cfg.Display.StatusStyle)
	if err != nil {
		return nil, err
	}

	app := &App{
		repo:     deps.Repo,
		api:      api.New(deps.Repo, deps.Logger),
		exporter: export.NewExporter(deps.Repo, style),
		config:   cfg,
		style:    style,
		logger:   deps.Logger,
		in:       bufio.NewReader(deps.In),
		out:      deps.Out,
		errs:     NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app, nil
}

// Run executes the named command. With no arguments the console is started.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.registry.Execute(ctx, "console", nil)
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// Close releases the repository.
func (a *App) Close() error {
	return a.repo.Close()
}

// taskService returns the in-memory task list, loading it from storage on first use.
func (a *App) taskService(ctx context.Context) (services.TaskService, error) {
	if a.tasks != nil {
		return a.tasks, nil
	}
	manager, err := services.NewTaskManager(ctx, a.repo, a.logger)
	if err != nil {
		return nil, a.errs.Handle("load tasks", err)
	}
	a.tasks = manager
	return a.tasks, nil
}

// appTimeout returns the configured per-command timeout
func (a *App) appTimeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}

// readLine reads one line of input without its line terminator. A final
// unterminated line is returned before io.EOF.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
