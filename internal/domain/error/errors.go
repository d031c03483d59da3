// Package error defines domain-specific errors for the Expense Tracker application.
package error

import (
	"errors"
	"fmt"
)

// Failure kinds shared by every entity. Coded entity errors wrap one of these
// so callers can branch with errors.Is without knowing the entity.
var (
	// ErrValidation is returned when input fails a declared constraint.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an id does not resolve within the caller's ownership scope.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorizedCategoryReference is returned when a category exists but is neither global nor owned by the caller.
	ErrUnauthorizedCategoryReference = errors.New("category is not available to this user")

	// ErrDuplicateKey is returned by repositories when a unique index rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// ValidationRule names the constraint a field failed.
type ValidationRule string

const (
	RuleRequired     ValidationRule = "required"
	RuleMaxLength    ValidationRule = "max_length"
	RuleMinValue     ValidationRule = "min_value"
	RuleMaxValue     ValidationRule = "max_value"
	RulePrecision    ValidationRule = "precision"
	RuleDateFormat   ValidationRule = "date_format"
	RuleFirstOfMonth ValidationRule = "first_of_month"
	RuleEmailFormat  ValidationRule = "email_format"
	RuleExists       ValidationRule = "exists"
	RuleUnique       ValidationRule = "unique"
	RuleConflict     ValidationRule = "conflict"
	RuleInUse        ValidationRule = "in_use"
)

// ValidationError reports which field failed which rule.
type ValidationError struct {
	Field   string
	Rule    ValidationRule
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, rule ValidationRule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Rule:    rule,
		Message: message,
	}
}

// IsConflict reports whether the rule describes a clash with existing state.
func (r ValidationRule) IsConflict() bool {
	return r == RuleUnique || r == RuleConflict || r == RuleInUse
}

// AsValidationError extracts the ValidationError carried by err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}

// Coded is an entity error carrying a stable code clients can branch on.
// Err is usually one of the failure kinds above, or a *ValidationError.
type Coded[C ~string] struct {
	Code    C
	Message string
	Err     error
}

func (e *Coded[C]) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Coded[C]) Unwrap() error {
	return e.Err
}

func newCoded[C ~string](code C, message string, err error) *Coded[C] {
	return &Coded[C]{Code: code, Message: message, Err: err}
}
