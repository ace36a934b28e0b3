package cli

import (
	"fmt"

	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// handledError shows a user-facing message but keeps the original error in
// the chain for errors.As and errors.ShouldLogError.
type handledError struct {
	msg   string
	cause error
}

func (e *handledError) Error() string {
	return e.msg
}

func (e *handledError) Unwrap() error {
	return e.cause
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return &handledError{
			msg:   fmt.Sprintf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage()),
			cause: err,
		}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &handledError{
			msg:   fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)),
			cause: err,
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}
