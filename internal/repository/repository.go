// Package repository defines the durable task store contract.
package repository

import (
	"context"

	"task-manager/internal/domain"
)

// TaskRepository is a durable task store keyed by case-insensitive name.
//
// The store does not enforce name uniqueness: inserting a name that is
// already present adds a second row. Lookups by name that match several
// rows act on all of them, except FindByName which returns the oldest.
type TaskRepository interface {
	// Insert appends a row and returns the number of rows written.
	Insert(ctx context.Context, task *domain.Task) (int64, error)
	// RemoveByName deletes every row with the name. Zero rows is not an error.
	RemoveByName(ctx context.Context, name string) (int64, error)
	// UpdateCompletionByName copies task's completion flag onto rows sharing its name.
	UpdateCompletionByName(ctx context.Context, task *domain.Task) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// ListAll returns every row in insertion order. The slice is empty, never nil, for an empty store.
	ListAll(ctx context.Context) ([]*domain.Task, error)
	// FindByName returns the oldest row with the name, or a not found error.
	FindByName(ctx context.Context, name string) (*domain.Task, error)
	DeleteAll(ctx context.Context) (int64, error)
	// SetStoreLocation points subsequent calls at another store and prepares its schema.
	SetStoreLocation(ctx context.Context, descriptor string) error
	Close() error
}
