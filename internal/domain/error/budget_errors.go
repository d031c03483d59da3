package error

import "fmt"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget does not exist or belongs to another user.
	ErrBudgetNotFound = fmt.Errorf("budget %w", ErrNotFound)
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount   BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidBudgetMonth    BudgetErrorCode = "BUD-010002"
	ErrCodeBudgetCategoryMissing BudgetErrorCode = "BUD-010003"
	ErrCodeBudgetExists          BudgetErrorCode = "BUD-010004"
	ErrCodeMissingBudgetFields   BudgetErrorCode = "BUD-010005"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BUD-020001"

	// Authorization errors (03XXXX)
	ErrCodeBudgetCategoryForbidden BudgetErrorCode = "BUD-030001"
)

// BudgetError is a coded budget failure.
type BudgetError = Coded[BudgetErrorCode]

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return newCoded(code, message, err)
}
