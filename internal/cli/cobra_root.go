package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/export"
)

// AppFactory builds the application once the configuration is final
type AppFactory func(ctx context.Context, cfg *config.Config) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory AppFactory
	config  *config.Config
	app     *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory AppFactory) *RootCommand {
	root := &RootCommand{factory: factory}

	root.cmd = &cobra.Command{
		Use:   "tasks",
		Short: "A small task manager with a console, one-shot commands and a REST API",
		Long: `tasks keeps a list of named tasks with due dates and a completion flag.

Run without a command to start the interactive console.

EXAMPLES:
  tasks                                    # Interactive menu
  tasks add "Pay rent" 12-01-2025          # Add a task due on Dec 1st 2025
  tasks list                               # List all tasks
  tasks list --name "pay rent"             # Show one task (names ignore case)
  tasks complete "Pay rent"                # Mark a task as completed
  tasks remove "Pay rent"                  # Remove a task
  tasks reset --yes                        # Delete every task
  tasks export --format pdf --out tasks.pdf
  tasks serve --addr :4567                 # Serve the REST API

CONFIGURATION:
  Configuration follows this priority order: flags > environment variables > config file > defaults

    TASKS_DB                               Store descriptor (default: sqlite:tasks.db)
                                           e.g. sqlite:/path/tasks.db, sqlite::memory:,
                                           mysql:user:pass@tcp(host:3306)/tasks
    TASKS_DB_QUERY_TIMEOUT                 Query timeout (default: 10s)
    TASKS_DB_WRITE_TIMEOUT                 Write timeout (default: 5s)
    TASKS_DB_STRICT_ERRORS                 Return storage errors instead of empty results (default: true)
    TASKS_SERVER_ADDR                      REST listen address (default: :4567)
    TASKS_STATUS_STYLE                     console (Complete/Incomplete) or api (Y/N)
    TASKS_LOG_LEVEL                        debug, info, warn or error (default: info)
    TASKS_LOG_FORMAT                       text or json (default: text)
    TASKS_APP_TIMEOUT                      Per-command timeout (default: 60s)
    TASKS_DEBUG                            Force debug logging when set`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.app.Run(cmd.Context(), nil)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and closes the application afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if r.app != nil {
		if closeErr := r.app.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close store: %w", closeErr)
		}
		r.app = nil
	}
	return err
}

// SetArgs sets the arguments parsed instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration the last run was built with
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Path to a YAML configuration file")

	flags.String("db", "", "Store descriptor (overrides TASKS_DB)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TASKS_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TASKS_DB_WRITE_TIMEOUT)")
	flags.Bool("strict-errors", true, "Return storage errors (overrides TASKS_DB_STRICT_ERRORS)")

	flags.String("addr", "", "REST listen address (overrides TASKS_SERVER_ADDR)")

	flags.String("status-style", "", "Completion wording: console or api (overrides TASKS_STATUS_STYLE)")

	flags.String("log-level", "", "Log level (overrides TASKS_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (overrides TASKS_LOG_FORMAT)")

	flags.Duration("app-timeout", 0, "Per-command timeout (overrides TASKS_APP_TIMEOUT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	consoleCmd := &cobra.Command{
		Use:   "console",
		Short: "Start the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.app.Run(cmd.Context(), []string{"console"})
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		Long: `Serve the task REST API until interrupted.

Routes:
  GET    /tasks    list tasks
  POST   /tasks    create {"name", "dueDate"}
  PUT    /tasks    update {"name", "completed"}
  DELETE /tasks    delete {"name"}
  GET    /health   liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.app.Run(cmd.Context(), []string{"serve"})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add NAME MM-DD-YYYY",
		Short: "Add a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewAddCommand(r.app).Execute(ctx, args)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List every task in storage order, or a single task with --name.

Examples:
  tasks list
  tasks list --name "pay rent"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			var filter []string
			if name, _ := cmd.Flags().GetString("name"); name != "" {
				filter = []string{name}
			}
			return NewListCommand(r.app).Execute(ctx, filter)
		},
	}
	listCmd.Flags().String("name", "", "Show only the task with this name")

	completeCmd := &cobra.Command{
		Use:   "complete NAME",
		Short: "Mark a task as completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewCompleteCommand(r.app).Execute(ctx, args)
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewRemoveCommand(r.app).Execute(ctx, args)
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task",
		Long: `Delete every stored task.

This operation cannot be undone. You are asked to confirm unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			yes, _ := cmd.Flags().GetBool("yes")
			return NewResetCommand(r.app, yes).Execute(ctx, args)
		},
	}
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as JSON, CSV or PDF",
		Long: `Export every stored task.

Supported formats:
  json  - array of {"name", "dueDate", "completed"}
  csv   - name,due_date,completed with a header row
  pdf   - printable task report

Examples:
  tasks export --format csv > tasks.csv
  tasks export --format pdf --out tasks.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			return NewExportCommand(r.app, format, out).Execute(ctx, args)
		},
	}
	exportCmd.Flags().String("format", export.FormatJSON, "Output format: json, csv or pdf")
	exportCmd.Flags().String("out", "", "Write to this file instead of standard output")

	r.cmd.AddCommand(
		consoleCmd,
		serveCmd,
		addCmd,
		listCmd,
		completeCmd,
		removeCmd,
		resetCmd,
		exportCmd,
	)
}

// withTimeout derives the per-command context
func (r *RootCommand) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), r.app.appTimeout())
}

// setup loads the configuration, applies flag overrides and builds the application
func (r *RootCommand) setup(ctx context.Context) error {
	path, _ := r.cmd.PersistentFlags().GetString("config")

	cfg, err := config.NewLoader(path).LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg

	app, err := r.factory(ctx, cfg)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

// getOverridesFromFlags collects the flags that were set on the command line
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("db") {
		v, _ := flags.GetString("db")
		overrides.Descriptor = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}
	if flags.Changed("strict-errors") {
		v, _ := flags.GetBool("strict-errors")
		overrides.StrictErrors = &v
	}
	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		overrides.ServerAddr = &v
	}
	if flags.Changed("status-style") {
		v, _ := flags.GetString("status-style")
		overrides.StatusStyle = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}

	return overrides
}
