package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// DueDateLayout is the Go layout for the MM-DD-YYYY due date format
const DueDateLayout = "01-02-2006"

const (
	defaultNameMinLength = 1
	defaultNameMaxLength = 255
)

// Validator provides common validation utilities
type Validator struct {
	dueDateRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		dueDateRegex: regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len([]rune(strings.TrimSpace(s)))
	return length >= min && length <= max
}

// HasNoControlCharacters rejects names carrying newlines, tabs and similar runes
func (v *Validator) HasNoControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// IsValidDueDateFormat checks the MM-DD-YYYY shape without checking the calendar
func (v *Validator) IsValidDueDateFormat(s string) bool {
	return v.dueDateRegex.MatchString(s)
}

// ParseDueDate parses s as a real calendar date in MM-DD-YYYY form
func (v *Validator) ParseDueDate(s string) (time.Time, bool) {
	if !v.IsValidDueDateFormat(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
