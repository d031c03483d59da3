package error

import "fmt"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist or belongs to another user.
	ErrExpenseNotFound = fmt.Errorf("expense %w", ErrNotFound)
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount          ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidDate            ExpenseErrorCode = "EXP-010002"
	ErrCodeDescriptionTooLong     ExpenseErrorCode = "EXP-010003"
	ErrCodeExpenseCategoryMissing ExpenseErrorCode = "EXP-010004"
	ErrCodeMissingExpenseFields   ExpenseErrorCode = "EXP-010005"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"

	// Authorization errors (03XXXX)
	ErrCodeExpenseCategoryForbidden ExpenseErrorCode = "EXP-030001"
)

// ExpenseError is a coded expense failure.
type ExpenseError = Coded[ExpenseErrorCode]

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return newCoded(code, message, err)
}
