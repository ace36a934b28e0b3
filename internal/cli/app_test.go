package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/logging"
	"task-manager/internal/repository/memory"
)

// setupTestApp builds an App over an in-memory repository. input is what the
// user types; everything printed lands in the returned buffer.
func setupTestApp(t *testing.T, input string) (*App, *memory.Repository, *bytes.Buffer) {
	t.Helper()

	repo := memory.New()
	out := &bytes.Buffer{}
	app, err := NewApp(Deps{
		Repo:   repo,
		Config: config.NewConfig(),
		Logger: logging.Discard(),
		In:     strings.NewReader(input),
		Out:    out,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return app, repo, out
}

// seed stores tasks before the app loads its task list
func seed(t *testing.T, repo *memory.Repository, tasks ...*domain.Task) {
	t.Helper()
	for _, task := range tasks {
		_, err := repo.Insert(context.Background(), task)
		require.NoError(t, err)
	}
}

func mustTask(t *testing.T, name, due string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(name, due)
	require.NoError(t, err)
	return task
}

func TestNewApp_RejectsUnknownStatusStyle(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Display.StatusStyle = "fancy"

	_, err := NewApp(Deps{Repo: memory.New(), Config: cfg, Logger: logging.Discard()})
	assert.Error(t, err)
}

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "no args starts the console",
			args:  []string{},
			input: "5\n",
			want:  "Goodbye!\n",
		},
		{
			name: "add command",
			args: []string{"add", "Pay rent", "12-01-2025"},
			want: "Added task: Task Name: Pay rent | Due Date: 12-01-2025 | Completed: Incomplete\n",
		},
		{
			name:    "add command with a bad date",
			args:    []string{"add", "Pay rent", "13-01-2025"},
			wantErr: true,
		},
		{
			name:    "add command without a date",
			args:    []string{"add", "Pay rent"},
			wantErr: true,
		},
		{
			name: "list command",
			args: []string{"list"},
			want: "No tasks found\n",
		},
		{
			name:    "complete unknown task",
			args:    []string{"complete", "Pay rent"},
			wantErr: true,
		},
		{
			name:    "unknown command",
			args:    []string{"start"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, out := setupTestApp(t, tt.input)

			err := app.Run(context.Background(), tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(out.String(), tt.want), "output %q should end with %q", out.String(), tt.want)
		})
	}
}

func TestApp_TaskServiceLoadsOnce(t *testing.T) {
	app, repo, _ := setupTestApp(t, "")
	seed(t, repo, mustTask(t, "Pay rent", "12-01-2025"))
	ctx := context.Background()

	first, err := app.taskService(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())

	seed(t, repo, mustTask(t, "Buy milk", "12-02-2025"))
	second, err := app.taskService(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, second.Len())
}

func TestApp_TaskServiceLoadFailure(t *testing.T) {
	app, repo, _ := setupTestApp(t, "")
	repo.Fail(assert.AnError)

	_, err := app.taskService(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load tasks")
}

func TestApp_ReadLine(t *testing.T) {
	app, _, _ := setupTestApp(t, "first\r\nlast")

	line, err := app.readLine()
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = app.readLine()
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = app.readLine()
	assert.Error(t, err)
}
