package services

import (
	"context"
	"log/slog"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository"
)

var _ TaskService = (*TaskManager)(nil)

// TaskManager keeps an ordered in-memory list of tasks in step with a
// repository and enforces name uniqueness and one-way completion.
//
// Every mutation is written to the repository first. The list changes only
// when the write succeeds. A TaskManager is not safe for concurrent use.
type TaskManager struct {
	repo   repository.TaskRepository
	tasks  []*domain.Task
	logger *slog.Logger
}

// NewTaskManager loads the current contents of repo, keeping storage order.
func NewTaskManager(ctx context.Context, repo repository.TaskRepository, logger *slog.Logger) (*TaskManager, error) {
	tasks, err := repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("tasks loaded", "count", len(tasks))
	return &TaskManager{
		repo:   repo,
		tasks:  tasks,
		logger: logger,
	}, nil
}

func nilTaskError() error {
	return errors.NewInvalidInputError("task", nil, "task cannot be nil")
}

// indexOf returns the position of the first tracked task named name, or -1
func (m *TaskManager) indexOf(name string) int {
	for i, t := range m.tasks {
		if t.EqualName(name) {
			return i
		}
	}
	return -1
}

// AddTask stores and tracks a copy of task. It returns false, changing
// nothing, when a task with the same name (ignoring case) is already tracked.
func (m *TaskManager) AddTask(ctx context.Context, task *domain.Task) (bool, error) {
	if task == nil {
		return false, nilTaskError()
	}
	if m.indexOf(task.Name()) >= 0 {
		m.logger.Debug("task name already tracked", "name", task.Name())
		return false, nil
	}

	if _, err := m.repo.Insert(ctx, task); err != nil {
		return false, err
	}
	tracked := *task
	m.tasks = append(m.tasks, &tracked)
	m.logger.Debug("task added", "name", task.Name())
	return true, nil
}

// RemoveTask deletes rows named like task from the store and stops tracking
// the first match. It reports whether a tracked task was removed.
func (m *TaskManager) RemoveTask(ctx context.Context, task *domain.Task) (bool, error) {
	if task == nil {
		return false, nilTaskError()
	}

	if _, err := m.repo.RemoveByName(ctx, task.Name()); err != nil {
		return false, err
	}

	i := m.indexOf(task.Name())
	if i < 0 {
		return false, nil
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	m.logger.Debug("task removed", "name", task.Name())
	return true, nil
}

// CompleteTask marks a tracked, incomplete task as completed. It returns
// false for untracked or already completed tasks.
func (m *TaskManager) CompleteTask(ctx context.Context, task *domain.Task) (bool, error) {
	if task == nil {
		return false, nilTaskError()
	}

	i := m.indexOf(task.Name())
	if i < 0 {
		m.logger.Warn("cannot complete untracked task", "name", task.Name())
		return false, nil
	}
	tracked := m.tasks[i]
	if tracked.IsCompleted() {
		m.logger.Warn("task already completed", "name", tracked.Name())
		return false, nil
	}

	completed := *tracked
	completed.Complete()
	if _, err := m.repo.UpdateCompletionByName(ctx, &completed); err != nil {
		return false, err
	}

	tracked.Complete()
	task.Complete()
	m.logger.Debug("task completed", "name", tracked.Name())
	return true, nil
}

// UpdateTask folds the completion carried by task into the tracked task of the
// same name and writes it through. Completion is never reverted. It returns
// false when no such task is tracked.
func (m *TaskManager) UpdateTask(ctx context.Context, task *domain.Task) (bool, error) {
	if task == nil {
		return false, nilTaskError()
	}

	i := m.indexOf(task.Name())
	if i < 0 {
		return false, nil
	}
	tracked := m.tasks[i]

	updated := *tracked
	if task.IsCompleted() {
		updated.Complete()
	}
	if _, err := m.repo.UpdateCompletionByName(ctx, &updated); err != nil {
		return false, err
	}

	*tracked = updated
	return true, nil
}

// CheckName reports whether a task named name is tracked, ignoring case
func (m *TaskManager) CheckName(name string) bool {
	return m.indexOf(name) >= 0
}

// Find returns a copy of the tracked task named name, ignoring case
func (m *TaskManager) Find(name string) (*domain.Task, bool) {
	if i := m.indexOf(name); i >= 0 {
		found := *m.tasks[i]
		return &found, true
	}
	return nil, false
}

// Tasks returns a copy of the tracked tasks in order
func (m *TaskManager) Tasks() []domain.Task {
	out := make([]domain.Task, len(m.tasks))
	for i, t := range m.tasks {
		out[i] = *t
	}
	return out
}

// Len returns the number of tracked tasks
func (m *TaskManager) Len() int {
	return len(m.tasks)
}
