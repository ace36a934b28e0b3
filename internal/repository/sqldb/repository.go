// Package sqldb implements repository.TaskRepository on a SQL database through sqlx.
package sqldb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository"
	"task-manager/internal/repository/sqldb/migrations"
)

var _ repository.TaskRepository = (*Repository)(nil)

const taskColumns = `id, name, dueDate, completed`

// Options tunes a Repository
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

// Repository is a TaskRepository on SQLite or MySQL
type Repository struct {
	mu sync.RWMutex
	db *sqlx.DB

	queryTimeout time.Duration
	writeTimeout time.Duration
	logger       *slog.Logger
}

// New opens the store named by descriptor and brings its schema up to date.
func New(ctx context.Context, descriptor string, opts Options) (*Repository, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	r := &Repository{
		queryTimeout: opts.QueryTimeout,
		writeTimeout: opts.WriteTimeout,
		logger:       opts.Logger,
	}

	db, err := r.open(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	r.db = db
	return r, nil
}

func (r *Repository) open(ctx context.Context, raw string) (*sqlx.DB, error) {
	desc, err := ParseDescriptor(raw)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("descriptor", raw, err.Error())
	}

	db, err := sqlx.Open(desc.Dialect, desc.DSN)
	if err != nil {
		return nil, apperrors.NewDatabaseError("open database", err)
	}
	if desc.Dialect == DialectSQLite {
		// One writer at a time avoids SQLITE_BUSY and keeps :memory: on a single connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.FromStorage("connect database", err)
	}

	if err := migrations.RunMigrations(ctx, db.DB, desc.Dialect); err != nil {
		db.Close()
		return nil, apperrors.NewDatabaseError("run migrations", err)
	}

	r.logger.Debug("store opened", "dialect", desc.Dialect)
	return db, nil
}

// SetStoreLocation opens descriptor, runs migrations and swaps it in. Calls
// already running finish against the previous store, which is then closed.
// On failure the current store stays in use.
func (r *Repository) SetStoreLocation(ctx context.Context, descriptor string) error {
	db, err := r.open(ctx, descriptor)
	if err != nil {
		return err
	}

	r.mu.Lock()
	old := r.db
	r.db = db
	r.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			r.logger.Warn("closing previous store", "error", err)
		}
	}
	r.logger.Info("store location changed", "dialect", db.DriverName())
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Close()
}

// Insert adds a row for task. An existing row with the same name is left alone.
func (r *Repository) Insert(ctx context.Context, task *domain.Task) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `INSERT INTO tasks (name, name_key, dueDate, completed) VALUES (?, ?, ?, ?)`
	n, err := execRowsAffected(ctx, r.db, "insert task", query,
		task.Name(), domain.NameKey(task.Name()), task.DueDate(), task.IsCompleted())
	if err != nil {
		return 0, err
	}
	r.logger.Info("task inserted", "name", task.Name(), "rows", n)
	return n, nil
}

func (r *Repository) RemoveByName(ctx context.Context, name string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `DELETE FROM tasks WHERE name_key = ?`
	n, err := execRowsAffected(ctx, r.db, "remove task", query, domain.NameKey(name))
	if err != nil {
		return 0, err
	}
	r.logger.Info("task removed", "name", name, "rows", n)
	return n, nil
}

func (r *Repository) UpdateCompletionByName(ctx context.Context, task *domain.Task) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `UPDATE tasks SET completed = ? WHERE name_key = ?`
	n, err := execRowsAffected(ctx, r.db, "update task completion", query,
		task.IsCompleted(), domain.NameKey(task.Name()))
	if err != nil {
		return 0, err
	}
	r.logger.Info("task completion updated", "name", task.Name(), "completed", task.IsCompleted(), "rows", n)
	return n, nil
}

func (r *Repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	var count int64
	query := `SELECT COUNT(*) FROM tasks WHERE name_key = ?`
	if err := r.db.GetContext(ctx, &count, query, domain.NameKey(name)); err != nil {
		return false, apperrors.FromStorage("check task exists", err)
	}
	return count > 0, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM tasks ORDER BY id ASC`, taskColumns)
	rows, err := queryMultiple[taskRow](ctx, r.db, query, "tasks")
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows)
}

func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE name_key = ? ORDER BY id ASC LIMIT 1`, taskColumns)
	row, err := querySingle[taskRow](ctx, r.db, query, "task", name, domain.NameKey(name))
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	n, err := execRowsAffected(ctx, r.db, "delete all tasks", `DELETE FROM tasks`)
	if err != nil {
		return 0, err
	}
	r.logger.Info("all tasks deleted", "rows", n)
	return n, nil
}
