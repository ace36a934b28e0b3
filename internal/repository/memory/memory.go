// Package memory is an in-process TaskRepository used in tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository"
)

var _ repository.TaskRepository = (*Repository)(nil)

var errClosed = errors.New("repository is closed")

type row struct {
	key       string
	name      string
	dueDate   string
	completed bool
}

// Repository keeps rows per store descriptor so SetStoreLocation behaves like
// switching databases.
type Repository struct {
	mu       sync.Mutex
	stores   map[string][]row
	location string
	fail     error
	closed   bool
}

// New returns an empty repository positioned at the "default" store.
func New() *Repository {
	return &Repository{
		stores:   map[string][]row{"default": {}},
		location: "default",
	}
}

// Fail makes every following call return err until Fail(nil) is called.
func (r *Repository) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

func (r *Repository) check(operation string) error {
	if r.closed {
		return apperrors.NewDatabaseError(operation, errClosed)
	}
	if r.fail != nil {
		return apperrors.FromStorage(operation, r.fail)
	}
	return nil
}

func (r *Repository) Insert(ctx context.Context, task *domain.Task) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("insert task"); err != nil {
		return 0, err
	}
	r.stores[r.location] = append(r.stores[r.location], row{
		key:       domain.NameKey(task.Name()),
		name:      task.Name(),
		dueDate:   task.DueDate(),
		completed: task.IsCompleted(),
	})
	return 1, nil
}

func (r *Repository) RemoveByName(ctx context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("remove task"); err != nil {
		return 0, err
	}
	key := domain.NameKey(name)
	rows := r.stores[r.location]
	kept := rows[:0]
	var removed int64
	for _, rw := range rows {
		if rw.key == key {
			removed++
			continue
		}
		kept = append(kept, rw)
	}
	r.stores[r.location] = kept
	return removed, nil
}

func (r *Repository) UpdateCompletionByName(ctx context.Context, task *domain.Task) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("update task completion"); err != nil {
		return 0, err
	}
	var updated int64
	key := domain.NameKey(task.Name())
	rows := r.stores[r.location]
	for i := range rows {
		if rows[i].key == key {
			rows[i].completed = task.IsCompleted()
			updated++
		}
	}
	return updated, nil
}

func (r *Repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("check task exists"); err != nil {
		return false, err
	}
	key := domain.NameKey(name)
	for _, rw := range r.stores[r.location] {
		if rw.key == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("list tasks"); err != nil {
		return nil, err
	}
	tasks := make([]*domain.Task, 0, len(r.stores[r.location]))
	for _, rw := range r.stores[r.location] {
		task, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("find task"); err != nil {
		return nil, err
	}
	key := domain.NameKey(name)
	for _, rw := range r.stores[r.location] {
		if rw.key == key {
			return rw.toDomain()
		}
	}
	return nil, apperrors.NewNotFoundError("task", name)
}

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("delete all tasks"); err != nil {
		return 0, err
	}
	n := int64(len(r.stores[r.location]))
	r.stores[r.location] = []row{}
	return n, nil
}

// SetStoreLocation switches to the store named by descriptor, creating it if needed.
func (r *Repository) SetStoreLocation(ctx context.Context, descriptor string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("set store location"); err != nil {
		return err
	}
	if _, ok := r.stores[descriptor]; !ok {
		r.stores[descriptor] = []row{}
	}
	r.location = descriptor
	return nil
}

func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (rw row) toDomain() (*domain.Task, error) {
	return domain.RestoreTask(rw.name, rw.dueDate, rw.completed)
}
