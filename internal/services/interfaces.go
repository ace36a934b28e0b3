package services

import (
	"context"

	"task-manager/internal/domain"
)

// TaskService is the task list as seen by the console and one-shot commands
type TaskService interface {
	AddTask(ctx context.Context, task *domain.Task) (bool, error)
	RemoveTask(ctx context.Context, task *domain.Task) (bool, error)
	CompleteTask(ctx context.Context, task *domain.Task) (bool, error)
	UpdateTask(ctx context.Context, task *domain.Task) (bool, error)
	CheckName(name string) bool
	Find(name string) (*domain.Task, bool)
	Tasks() []domain.Task
	Len() int
}
