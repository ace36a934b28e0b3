package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"task-manager/internal/cli"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/repository/sqldb"
)

// RepositoryFactory creates the task repository described by the database configuration
type RepositoryFactory struct {
	cfg    config.DatabaseConfig
	logger *slog.Logger
}

// NewRepositoryFactory creates a new repository factory for the given configuration
func NewRepositoryFactory(cfg config.DatabaseConfig, logger *slog.Logger) *RepositoryFactory {
	return &RepositoryFactory{cfg: cfg, logger: logger}
}

// CreateRepository opens the store named by the descriptor. Unless strict
// errors are configured, storage failures are logged and swallowed.
func (rf *RepositoryFactory) CreateRepository(ctx context.Context) (repository.TaskRepository, error) {
	repo, err := sqldb.New(ctx, rf.cfg.Descriptor, sqldb.Options{
		QueryTimeout: rf.cfg.QueryTimeout,
		WriteTimeout: rf.cfg.WriteTimeout,
		Logger:       rf.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %q: %w", rf.cfg.Descriptor, err)
	}

	if !rf.cfg.StrictErrors {
		return repository.Degrading(repo, rf.logger), nil
	}
	return repo, nil
}

// appFactory wires the application for a final configuration
func appFactory(in io.Reader, out, logOut io.Writer) cli.AppFactory {
	return func(ctx context.Context, cfg *config.Config) (*cli.App, error) {
		logger := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		}, logOut)

		repo, err := NewRepositoryFactory(cfg.Database, logger).CreateRepository(ctx)
		if err != nil {
			return nil, err
		}

		app, err := cli.NewApp(cli.Deps{
			Repo:   repo,
			Config: cfg,
			Logger: logger,
			In:     in,
			Out:    out,
		})
		if err != nil {
			repo.Close()
			return nil, err
		}
		return app, nil
	}
}
