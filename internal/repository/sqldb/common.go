package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	apperrors "task-manager/internal/errors"
)

// withTimeout bounds a single statement. A zero timeout leaves ctx unchanged.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// execRowsAffected runs a write statement and reports how many rows it touched
func execRowsAffected(ctx context.Context, db *sqlx.DB, operation, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.FromStorage(operation, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.FromStorage("get rows affected", err)
	}
	return rows, nil
}

// querySingle scans one row into T. No row is a not found error for entityType/id.
func querySingle[T any](ctx context.Context, db *sqlx.DB, query, entityType, id string, args ...interface{}) (*T, error) {
	var dest T
	if err := db.GetContext(ctx, &dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(entityType, id)
		}
		return nil, apperrors.FromStorage("scan "+entityType, err)
	}
	return &dest, nil
}

// queryMultiple scans all rows into a slice of T. An empty result is a non-nil empty slice.
func queryMultiple[T any](ctx context.Context, db *sqlx.DB, query, entityType string, args ...interface{}) ([]T, error) {
	dest := []T{}
	if err := db.SelectContext(ctx, &dest, query, args...); err != nil {
		return nil, apperrors.FromStorage("query "+entityType, err)
	}
	return dest, nil
}
