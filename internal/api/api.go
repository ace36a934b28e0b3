// Package api exposes task operations that go straight to the repository.
// It backs the REST surface, which never reads through the console's
// in-memory task list.
package api

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository"
)

// Messages returned to REST clients for rejected requests
const (
	MsgNameRequired  = "task name is required"
	MsgBadDueDate    = "due date must be in MM-DD-YYYY format"
	MsgAlreadyExists = "task already exists"
	MsgNotFound      = "task not found"
)

// API defines the task operations available to remote clients
type API interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	FindTask(ctx context.Context, name string) (*domain.Task, error)
	CreateTask(ctx context.Context, name, dueDate string) (*domain.Task, error)
	// UpdateTask applies completion to the stored task and returns it as stored.
	// A false completed never reverts a completed task.
	UpdateTask(ctx context.Context, name string, completed bool) (*domain.Task, error)
	DeleteTask(ctx context.Context, name string) (*domain.Task, error)
	ResetTasks(ctx context.Context) (int64, error)
}

type apiImpl struct {
	repo   repository.TaskRepository
	logger *slog.Logger
}

// New creates a new API instance.
func New(repo repository.TaskRepository, logger *slog.Logger) API {
	return &apiImpl{repo: repo, logger: logger}
}

func nameRequired() error {
	return errors.NewValidationErrorWithCode(domain.ErrEmptyName.Code, MsgNameRequired, nil)
}

func notFound(name string) error {
	err := errors.NewNotFoundError("task", name)
	err.Message = MsgNotFound
	return err
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return a.repo.ListAll(ctx)
}

func (a *apiImpl) FindTask(ctx context.Context, name string) (*domain.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nameRequired()
	}
	task, err := a.repo.FindByName(ctx, name)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, notFound(name)
		}
		return nil, err
	}
	return task, nil
}

func (a *apiImpl) CreateTask(ctx context.Context, name, dueDate string) (*domain.Task, error) {
	task, err := domain.NewTask(name, dueDate)
	if err != nil {
		switch {
		case stderrors.Is(err, domain.ErrEmptyName):
			return nil, nameRequired()
		case stderrors.Is(err, domain.ErrBadDate):
			return nil, errors.NewValidationErrorWithCode(domain.ErrBadDate.Code, MsgBadDueDate, err)
		default:
			return nil, err
		}
	}

	exists, err := a.repo.ExistsByName(ctx, task.Name())
	if err != nil {
		return nil, err
	}
	if exists {
		conflict := errors.NewConflictError("task", task.Name())
		conflict.Message = MsgAlreadyExists
		return nil, conflict
	}

	if _, err := a.repo.Insert(ctx, task); err != nil {
		return nil, err
	}
	a.logger.Info("task created", "name", task.Name(), "due_date", task.DueDate())
	return task, nil
}

func (a *apiImpl) UpdateTask(ctx context.Context, name string, completed bool) (*domain.Task, error) {
	task, err := a.FindTask(ctx, name)
	if err != nil {
		return nil, err
	}

	if completed && !task.IsCompleted() {
		task.Complete()
		if _, err := a.repo.UpdateCompletionByName(ctx, task); err != nil {
			return nil, err
		}
		a.logger.Info("task completed", "name", task.Name())
	}
	return task, nil
}

func (a *apiImpl) DeleteTask(ctx context.Context, name string) (*domain.Task, error) {
	task, err := a.FindTask(ctx, name)
	if err != nil {
		return nil, err
	}

	if _, err := a.repo.RemoveByName(ctx, task.Name()); err != nil {
		return nil, err
	}
	a.logger.Info("task deleted", "name", task.Name())
	return task, nil
}

func (a *apiImpl) ResetTasks(ctx context.Context) (int64, error) {
	n, err := a.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	a.logger.Warn("all tasks deleted", "rows", n)
	return n, nil
}
