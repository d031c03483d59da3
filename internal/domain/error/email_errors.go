package error

import "errors"

// Email domain errors.
var (
	// ErrEmailQueueFailed is returned when an alert email fails to be queued.
	ErrEmailQueueFailed = errors.New("failed to queue email")

	// ErrInvalidTemplate is returned when a job names a template the renderer does not know.
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrEmailAlreadyQueued is returned when the outbox already holds a job with the same dedupe key.
	ErrEmailAlreadyQueued = errors.New("email already queued")

	// ErrEmailJobNotFound is returned when an email job is not found.
	ErrEmailJobNotFound = errors.New("email job not found")
)

// EmailErrorCode identifies an email failure. Format: EMAIL-XXYYYY.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Send errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeInvalidTemplate EmailErrorCode = "EMAIL-030001"
)

// EmailError is a coded delivery failure. The worker uses IsPermanent to
// decide between retrying and giving up.
type EmailError struct {
	Coded[EmailErrorCode]
}

// IsPermanent reports whether retrying the send cannot succeed.
func (e *EmailError) IsPermanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeInvalidTemplate
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Coded: *newCoded(code, message, err)}
}
