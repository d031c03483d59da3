package error

import "fmt"

// User domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
)

// UserErrorCode defines error codes for user profile errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidUserName   UserErrorCode = "USR-010001"
	ErrCodeInvalidUserEmail  UserErrorCode = "USR-010002"
	ErrCodeEmailTaken        UserErrorCode = "USR-010003"
	ErrCodeMissingUserFields UserErrorCode = "USR-010004"

	// Lookup errors (02XXXX)
	ErrCodeUserNotFound UserErrorCode = "USR-020001"
)

// UserError is a coded user profile failure.
type UserError = Coded[UserErrorCode]

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return newCoded(code, message, err)
}
