package sqldb

import (
	"database/sql"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
)

// taskRow is a row of the tasks table
type taskRow struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	DueDate   sql.NullString `db:"dueDate"`
	Completed sql.NullBool   `db:"completed"`
}

// toDomain converts the row, rejecting rows that could not have been written through this package.
func (r taskRow) toDomain() (*domain.Task, error) {
	task, err := domain.RestoreTask(r.Name, r.DueDate.String, r.Completed.Bool)
	if err != nil {
		return nil, apperrors.NewDatabaseError("read task row", err).WithContext("id", r.ID)
	}
	return task, nil
}

func toDomainSlice(rows []taskRow) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(rows))
	for _, r := range rows {
		task, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
