package repository

import (
	"context"
	"log/slog"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
)

// degrading hides storage failures from callers. Every failure is logged and
// replaced with the zero result of the operation.
type degrading struct {
	next   TaskRepository
	logger *slog.Logger
}

// Degrading wraps next so that storage failures are logged and swallowed.
// Callers then see 0 rows, false, an empty list or a not found error, and
// cannot tell an unavailable store from an absent task.
// SetStoreLocation and Close still return their errors.
func Degrading(next TaskRepository, logger *slog.Logger) TaskRepository {
	return &degrading{next: next, logger: logger}
}

func (d *degrading) swallow(operation string, err error) {
	d.logger.Error("storage operation failed", "operation", operation, "error", err)
}

func (d *degrading) Insert(ctx context.Context, task *domain.Task) (int64, error) {
	n, err := d.next.Insert(ctx, task)
	if err != nil {
		d.swallow("insert", err)
		return 0, nil
	}
	return n, nil
}

func (d *degrading) RemoveByName(ctx context.Context, name string) (int64, error) {
	n, err := d.next.RemoveByName(ctx, name)
	if err != nil {
		d.swallow("remove by name", err)
		return 0, nil
	}
	return n, nil
}

func (d *degrading) UpdateCompletionByName(ctx context.Context, task *domain.Task) (int64, error) {
	n, err := d.next.UpdateCompletionByName(ctx, task)
	if err != nil {
		d.swallow("update completion", err)
		return 0, nil
	}
	return n, nil
}

func (d *degrading) ExistsByName(ctx context.Context, name string) (bool, error) {
	ok, err := d.next.ExistsByName(ctx, name)
	if err != nil {
		d.swallow("exists by name", err)
		return false, nil
	}
	return ok, nil
}

func (d *degrading) ListAll(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := d.next.ListAll(ctx)
	if err != nil {
		d.swallow("list all", err)
		return []*domain.Task{}, nil
	}
	return tasks, nil
}

func (d *degrading) FindByName(ctx context.Context, name string) (*domain.Task, error) {
	task, err := d.next.FindByName(ctx, name)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			d.swallow("find by name", err)
		}
		return nil, apperrors.NewNotFoundError("task", name)
	}
	return task, nil
}

func (d *degrading) DeleteAll(ctx context.Context) (int64, error) {
	n, err := d.next.DeleteAll(ctx)
	if err != nil {
		d.swallow("delete all", err)
		return 0, nil
	}
	return n, nil
}

func (d *degrading) SetStoreLocation(ctx context.Context, descriptor string) error {
	return d.next.SetStoreLocation(ctx, descriptor)
}

func (d *degrading) Close() error {
	return d.next.Close()
}
