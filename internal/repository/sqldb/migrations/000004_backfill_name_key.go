package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"task-manager/internal/domain"
)

func init() {
	RegisterGoMigration(4, "000004_backfill_name_key", backfillNameKeys)
}

// backfillNameKeys writes the folded lookup key for rows stored before the
// name_key column existed.
func backfillNameKeys(ctx context.Context, tx *sql.Tx) error {
	type entry struct {
		id   int64
		name string
	}
	var entries []entry

	// Read everything first; the update reuses the same connection.
	rows, err := tx.QueryContext(ctx, "SELECT id, name FROM tasks")
	if err != nil {
		return fmt.Errorf("failed to query tasks: %w", err)
	}
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.name); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan task row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating tasks: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, "UPDATE tasks SET name_key = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("failed to prepare name_key update: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, domain.NameKey(e.name), e.id); err != nil {
			return fmt.Errorf("failed to update name_key for id %d: %w", e.id, err)
		}
	}
	return nil
}
