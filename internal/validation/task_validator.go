package validation

// TaskValidator provides validation for task names and due dates
type TaskValidator struct {
	validator *Validator
	minLength int
	maxLength int
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
		minLength: defaultNameMinLength,
		maxLength: defaultNameMaxLength,
	}
}

// ValidateTaskName validates a task name. Surrounding whitespace is ignored.
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("name")
		return validationError
	}

	if !tv.validator.IsValidStringLength(trimmedName, tv.minLength, tv.maxLength) {
		validationError.AddInvalidLengthError("name", trimmedName, tv.minLength, tv.maxLength)
	}

	if !tv.validator.HasNoControlCharacters(trimmedName) {
		validationError.AddInvalidCharacterError("name", trimmedName)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateDueDate validates a due date string in MM-DD-YYYY form
func (tv *TaskValidator) ValidateDueDate(dueDate string) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(dueDate) {
		validationError.AddRequiredError("due_date")
		return validationError
	}

	if !tv.validator.IsValidDueDateFormat(dueDate) {
		validationError.AddInvalidFormatError("due_date", dueDate, "MM-DD-YYYY")
		return validationError
	}

	if _, ok := tv.validator.ParseDueDate(dueDate); !ok {
		validationError.AddInvalidValueError("due_date", dueDate, "not a calendar date")
		return validationError
	}

	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}
