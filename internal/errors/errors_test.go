package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: 123")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}
	
	resource, ok := err.GetContext("resource")
	if !ok || resource != "task" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("connection timeout")
	err := NewDatabaseError("insert task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: insert task" {
		t.Errorf("NewDatabaseError message = %v, want %v", err.Message, "database operation failed: insert task")
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewDatabaseError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}
	
	operation, ok := err.GetContext("operation")
	if !ok || operation != "insert task" {
		t.Errorf("NewDatabaseError should set operation context")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("task", nil, "task cannot be nil")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for task: task cannot be nil" {
		t.Errorf("NewInvalidInputError message = %v, want %v", err.Message, "invalid input for task: task cannot be nil")
	}
	if err.Code != "INVALID_INPUT" {
		t.Errorf("NewInvalidInputError code = %v, want %v", err.Code, "INVALID_INPUT")
	}
	
	field, ok := err.GetContext("field")
	if !ok || field != "task" {
		t.Errorf("NewInvalidInputError should set field context")
	}
	
	value, ok := err.GetContext("value")
	if !ok || value != nil {
		t.Errorf("NewInvalidInputError should set value context")
	}
	
	reason, ok := err.GetContext("reason")
	if !ok || reason != "task cannot be nil" {
		t.Errorf("NewInvalidInputError should set reason context")
	}
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("database query", "5s")

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewTimeoutError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Message != "operation timed out: database query" {
		t.Errorf("NewTimeoutError message = %v, want %v", err.Message, "operation timed out: database query")
	}
	if err.Code != "TIMEOUT" {
		t.Errorf("NewTimeoutError code = %v, want %v", err.Code, "TIMEOUT")
	}
	
	operation, ok := err.GetContext("operation")
	if !ok || operation != "database query" {
		t.Errorf("NewTimeoutError should set operation context")
	}
	
	timeout, ok := err.GetContext("timeout")
	if !ok || timeout != "5s" {
		t.Errorf("NewTimeoutError should set timeout context")
	}
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("task", "Pay rent")

	if err.Type != ErrorTypeConflict {
		t.Errorf("NewConflictError type = %v, want %v", err.Type, ErrorTypeConflict)
	}
	if err.Message != "task already exists: Pay rent" {
		t.Errorf("NewConflictError message = %v, want %v", err.Message, "task already exists: Pay rent")
	}
	if err.Code != "ALREADY_EXISTS" {
		t.Errorf("NewConflictError code = %v, want %v", err.Code, "ALREADY_EXISTS")
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "Pay rent" {
		t.Errorf("NewConflictError should set identifier context")
	}
}

func TestNewValidationErrorWithCode(t *testing.T) {
	template := NewValidationErrorWithCode("EMPTY_NAME", "empty name", nil)
	err := fmt.Errorf("create: %w", NewValidationErrorWithCode("EMPTY_NAME", "empty name", errors.New("name is required")))

	if !errors.Is(err, template) {
		t.Errorf("errors.Is should match validation errors sharing a code")
	}
	if errors.Is(err, NewValidationErrorWithCode("BAD_DATE", "bad date", nil)) {
		t.Errorf("errors.Is should not match validation errors with a different code")
	}
}

func TestFromStorage(t *testing.T) {
	timeout := FromStorage("list tasks", fmt.Errorf("query: %w", context.DeadlineExceeded))
	if timeout.Type != ErrorTypeTimeout {
		t.Errorf("FromStorage type = %v, want %v", timeout.Type, ErrorTypeTimeout)
	}
	if !errors.Is(timeout, context.DeadlineExceeded) {
		t.Errorf("FromStorage should keep the deadline error as cause")
	}

	cause := errors.New("disk I/O error")
	dbErr := FromStorage("insert task", cause)
	if dbErr.Type != ErrorTypeDatabase {
		t.Errorf("FromStorage type = %v, want %v", dbErr.Type, ErrorTypeDatabase)
	}
	if dbErr.Cause != cause {
		t.Errorf("FromStorage cause = %v, want %v", dbErr.Cause, cause)
	}
}

func TestHTTPStatus(t *testing.T) {
	if got := HTTPStatus(NewNotFoundError("task", "x")); got != 404 {
		t.Errorf("HTTPStatus() = %v, want 404", got)
	}
	if got := HTTPStatus(errors.New("boom")); got != 500 {
		t.Errorf("HTTPStatus() = %v, want 500", got)
	}
	if !IsNotFound(NewNotFoundError("task", "x")) {
		t.Errorf("IsNotFound should return true for not found errors")
	}
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	regularError := errors.New("regular error")

	result, ok := AsAppError(appError)
	if !ok {
		t.Errorf("AsAppError should return true for AppError")
	}
	if result != appError {
		t.Errorf("AsAppError should return the same AppError instance")
	}

	result, ok = AsAppError(regularError)
	if ok {
		t.Errorf("AsAppError should return false for regular error")
	}
	if result != nil {
		t.Errorf("AsAppError should return nil for regular error")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	regularError := errors.New("regular error")

	if !IsErrorType(appError, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return true for matching type")
	}

	if IsErrorType(appError, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should return false for different type")
	}

	if IsErrorType(regularError, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("invalid input", nil),
			expected: "invalid input",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "123"),
			expected: "task not found: 123",
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("query", errors.New("timeout")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("query", "5s"),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Conflict error",
			err:      NewConflictError("task", "Pay rent"),
			expected: "task already exists: Pay rent",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	appError := &AppError{Code: "VALIDATION_FAILED"}
	regularError := errors.New("regular error")

	if GetErrorCode(appError) != "VALIDATION_FAILED" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}

	if GetErrorCode(regularError) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("invalid input", nil),
			expected: false,
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "123"),
			expected: false,
		},
		{
			name:     "Invalid input error",
			err:      NewInvalidInputError("selection", "x", "invalid selection"),
			expected: false,
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("query", errors.New("timeout")),
			expected: true,
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("query", "5s"),
			expected: true,
		},
		{
			name:     "Conflict error",
			err:      NewConflictError("task", "Pay rent"),
			expected: false,
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}