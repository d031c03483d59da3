// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/alert"
	"github.com/expense-tracker/backend/internal/application/usecase/reference"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
)

const (
	amountField      = "amount"
	dateField        = "date"
	descriptionField = "description"
)

// wrap attaches an expense error code to validation and reference failures.
// Other errors are returned unchanged.
func wrap(err error) error {
	if errors.Is(err, domainerror.ErrUnauthorizedCategoryReference) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseCategoryForbidden,
			"category is not available to this user",
			err,
		)
	}

	v, ok := domainerror.AsValidationError(err)
	if !ok {
		return err
	}
	code := domainerror.ErrCodeMissingExpenseFields
	switch v.Field {
	case amountField:
		code = domainerror.ErrCodeInvalidAmount
	case dateField:
		code = domainerror.ErrCodeInvalidDate
	case descriptionField:
		code = domainerror.ErrCodeDescriptionTooLong
	case reference.CategoryField:
		code = domainerror.ErrCodeExpenseCategoryMissing
	}
	return domainerror.NewExpenseError(code, v.Message, v)
}

func notFound() error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotFound,
		"expense not found",
		domainerror.ErrExpenseNotFound,
	)
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if err := validation.MaxLength(descriptionField, description); err != nil {
		return "", err
	}
	return description, nil
}

// resolveCategory checks an optional category reference.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, principal uuid.UUID, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	_, err := reference.ResolveCategory(ctx, repo, principal, *id)
	return err
}

// notifyBudget runs the budget alert after a committed write. Failures are only logged.
func notifyBudget(ctx context.Context, alerter *alert.BudgetAlertUseCase, expense, previous *entity.Expense) {
	if alerter == nil {
		return
	}
	if _, err := alerter.Execute(ctx, alert.CheckBudgetInput{Expense: expense, Previous: previous}); err != nil {
		slog.WarnContext(ctx, "Failed to check budget after expense write",
			"user_id", expense.UserID,
			"expense_id", expense.ID,
			"error", err,
		)
	}
}
