package sqldb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/logging"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	descriptor := "sqlite:" + filepath.Join(t.TempDir(), "tasks.db")
	repo, err := New(context.Background(), descriptor, Options{
		QueryTimeout: 5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Logger:       logging.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustTask(t *testing.T, name, due string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(name, due)
	require.NoError(t, err)
	return task
}

func TestRepository_PayRentScenario(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	task := mustTask(t, "Pay rent", "12-01-2025")
	n, err := repo.Insert(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	tasks, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pay rent", tasks[0].Name())
	assert.Equal(t, "12-01-2025", tasks[0].DueDate())
	assert.False(t, tasks[0].IsCompleted())

	task.Complete()
	n, err = repo.UpdateCompletionByName(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	found, err := repo.FindByName(ctx, "Pay rent")
	require.NoError(t, err)
	assert.True(t, found.IsCompleted())
}

func TestRepository_DeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for _, name := range []string{"Pay rent", "Buy milk", "Walk dog"} {
		_, err := repo.Insert(ctx, mustTask(t, name, "01-15-2026"))
		require.NoError(t, err)
	}

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	tasks, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestRepository_DuplicateNamesProduceSeparateRows(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Insert(ctx, mustTask(t, "Buy milk", "01-15-2026"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, mustTask(t, "BUY MILK", "02-20-2026"))
	require.NoError(t, err)

	tasks, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	found, err := repo.FindByName(ctx, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "01-15-2026", found.DueDate(), "the oldest row wins")

	n, err := repo.RemoveByName(ctx, "Buy Milk")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRepository_CaseInsensitiveName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Insert(ctx, mustTask(t, "Pay Rent", "12-01-2025"))
	require.NoError(t, err)

	tests := []string{"pay rent", "PAY RENT", "Pay Rent"}
	for _, name := range tests {
		exists, err := repo.ExistsByName(ctx, name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	exists, err := repo.ExistsByName(ctx, "pay rent tomorrow")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_UnicodeNameMatching(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	task := mustTask(t, "Ärger", "12-01-2025")
	_, err := repo.Insert(ctx, task)
	require.NoError(t, err)
	_, err = repo.Insert(ctx, mustTask(t, "Straße", "12-02-2025"))
	require.NoError(t, err)

	for _, name := range []string{"ärger", "ÄRGER", " Ärger "} {
		exists, err := repo.ExistsByName(ctx, name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}

	found, err := repo.FindByName(ctx, "STRASSE")
	require.NoError(t, err)
	assert.Equal(t, "Straße", found.Name())

	done := mustTask(t, "ärger", "12-01-2025")
	done.Complete()
	n, err := repo.UpdateCompletionByName(ctx, done)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	found, err = repo.FindByName(ctx, "Ärger")
	require.NoError(t, err)
	assert.True(t, found.IsCompleted())
	assert.Equal(t, "Ärger", found.Name(), "the stored spelling is kept")

	n, err = repo.RemoveByName(ctx, "ärger")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	exists, err := repo.ExistsByName(ctx, "Ärger")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_Misses(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	n, err := repo.RemoveByName(ctx, "ghost")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.UpdateCompletionByName(ctx, mustTask(t, "ghost", "01-01-2026"))
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.FindByName(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRepository_ListAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	names := []string{"Zebra", "apple", "Mango"}
	for _, name := range names {
		_, err := repo.Insert(ctx, mustTask(t, name, "03-03-2026"))
		require.NoError(t, err)
	}

	tasks, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, name := range names {
		assert.Equal(t, name, tasks[i].Name())
	}
}

func TestRepository_SetStoreLocation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Insert(ctx, mustTask(t, "Pay rent", "12-01-2025"))
	require.NoError(t, err)

	other := filepath.Join(t.TempDir(), "other.db")
	require.NoError(t, repo.SetStoreLocation(ctx, "jdbc:sqlite:"+other))
	_, err = os.Stat(other)
	assert.NoError(t, err, "the new store is created and migrated")

	tasks, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks, "the new store starts empty")

	_, err = repo.Insert(ctx, mustTask(t, "Buy milk", "01-15-2026"))
	require.NoError(t, err)
	exists, err := repo.ExistsByName(ctx, "Buy milk")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_SetStoreLocationFailureKeepsCurrentStore(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Insert(ctx, mustTask(t, "Pay rent", "12-01-2025"))
	require.NoError(t, err)

	err = repo.SetStoreLocation(ctx, "postgres://localhost/tasks")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))

	exists, err := repo.ExistsByName(ctx, "Pay rent")
	require.NoError(t, err)
	assert.True(t, exists, "the previous store is still in use")
}

func TestRepository_InMemory(t *testing.T) {
	ctx := context.Background()
	repo, err := New(ctx, "sqlite::memory:", Options{Logger: logging.Discard()})
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.Insert(ctx, mustTask(t, "Pay rent", "12-01-2025"))
	require.NoError(t, err)

	tasks, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestRepository_ClosedStoreReturnsDatabaseError(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.db.Close())

	_, err := repo.ListAll(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestRepository_CorruptRow(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.db.ExecContext(ctx, `INSERT INTO tasks (name, dueDate) VALUES ('Broken', 'someday')`)
	require.NoError(t, err)

	_, err = repo.ListAll(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase))
}

func TestRepository_Timeout(t *testing.T) {
	repo := newTestRepository(t)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := repo.ListAll(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeTimeout))
}
