package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

// DueDateLayout is the external representation of a due date (MM-DD-YYYY).
const DueDateLayout = validation.DueDateLayout

// Construction failures. Both match with errors.Is and wrap the field-level
// validation.ValidationError that describes the rejected input.
var (
	ErrEmptyName = apperrors.NewValidationErrorWithCode("EMPTY_NAME", "empty name", nil)
	ErrBadDate   = apperrors.NewValidationErrorWithCode("BAD_DATE", "bad date", nil)
)

var taskValidator = validation.NewTaskValidator()

// Task is a named unit of work with a due date and a one-way completion flag.
// A Task can only be obtained through NewTask, RestoreTask or JSON decoding,
// all of which reject blank names and dates that are not real calendar days.
type Task struct {
	name      string
	dueDate   time.Time
	completed bool
}

// NewTask creates an incomplete task.
func NewTask(name, dueDate string) (*Task, error) {
	return RestoreTask(name, dueDate, false)
}

// RestoreTask creates a task with a known completion state, as when it is
// read back from storage. Surrounding whitespace is dropped from the name.
func RestoreTask(name, dueDate string, completed bool) (*Task, error) {
	if err := taskValidator.ValidateTaskName(name); err != nil {
		return nil, nameError(err)
	}

	if err := taskValidator.ValidateDueDate(dueDate); err != nil {
		return nil, dateError(err)
	}
	due, err := time.Parse(DueDateLayout, dueDate)
	if err != nil {
		return nil, dateError(err)
	}

	return &Task{
		name:      strings.TrimSpace(name),
		dueDate:   due,
		completed: completed,
	}, nil
}

func nameError(cause error) error {
	if ve, ok := cause.(*validation.ValidationError); ok && ve.FirstType() == validation.ErrorTypeRequired {
		return apperrors.NewValidationErrorWithCode(ErrEmptyName.Code, ErrEmptyName.Message, cause)
	}
	// Length and control-character failures are still name failures but keep their own message.
	appErr := apperrors.NewValidationErrorWithCode("BAD_NAME", "bad name", cause)
	if ve, ok := cause.(*validation.ValidationError); ok {
		appErr.Message = ve.GetUserFriendlyMessage()
	}
	return appErr
}

func dateError(cause error) error {
	return apperrors.NewValidationErrorWithCode(ErrBadDate.Code, ErrBadDate.Message, cause)
}

// Complete marks the task as completed. Calling it again has no effect.
func (t *Task) Complete() {
	t.completed = true
}

func (t *Task) Name() string {
	return t.name
}

// DueDate returns the due date in MM-DD-YYYY form.
func (t *Task) DueDate() string {
	return t.dueDate.Format(DueDateLayout)
}

func (t *Task) IsCompleted() bool {
	return t.completed
}

// EqualName reports whether other names this task, ignoring case and
// surrounding whitespace.
func (t *Task) EqualName(other string) bool {
	return NameKey(t.name) == NameKey(other)
}

// NameKey is the form names are compared and stored under: trimmed and
// Unicode case folded, so "Ärger" and " ärger" share one key.
func NameKey(name string) string {
	// A Caser keeps state and must not be shared between goroutines.
	return cases.Fold().String(strings.TrimSpace(name))
}

// Summary renders the task on one line using the given status vocabulary.
func (t *Task) Summary(style StatusStyle) string {
	return fmt.Sprintf("Task Name: %s | Due Date: %s | Completed: %s",
		t.name, t.DueDate(), style.Status(t.completed))
}

// String returns the API-style summary.
func (t *Task) String() string {
	return t.Summary(StatusStyleAPI)
}

type taskJSON struct {
	Name      string `json:"name"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}

func (t *Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		Name:      t.name,
		DueDate:   t.DueDate(),
		Completed: t.completed,
	})
}

// UnmarshalJSON decodes a task and applies the same checks as RestoreTask.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := RestoreTask(raw.Name, raw.DueDate, raw.Completed)
	if err != nil {
		return err
	}
	*t = *decoded
	return nil
}
