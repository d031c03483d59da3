package error

import "fmt"

// ErrCategoryNotFound is returned when a category is not found or not visible to the caller.
var ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

// CategoryErrorCode identifies a category failure. Format: CAT-XXYYYY.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameRequired  CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010005"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010008"
	ErrCodeCategoryInUse         CategoryErrorCode = "CAT-010009"
)

// CategoryError is a coded category failure.
type CategoryError = Coded[CategoryErrorCode]

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return newCoded(code, message, err)
}
