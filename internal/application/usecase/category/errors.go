// Package category contains category-related use cases.
package category

import (
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/validation"
)

const nameField = "name"

// invalid attaches a category error code to a validation failure.
func invalid(err *domainerror.ValidationError) error {
	code := domainerror.ErrCodeMissingCategoryFields
	switch err.Rule {
	case domainerror.RuleRequired:
		code = domainerror.ErrCodeCategoryNameRequired
	case domainerror.RuleMaxLength:
		code = domainerror.ErrCodeCategoryNameTooLong
	case domainerror.RuleUnique, domainerror.RuleConflict:
		code = domainerror.ErrCodeCategoryNameExists
	case domainerror.RuleInUse:
		code = domainerror.ErrCodeCategoryInUse
	}
	return domainerror.NewCategoryError(code, err.Message, err)
}

func notFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

func validateName(name string) (string, error) {
	trimmed, err := validation.RequiredText(nameField, name)
	if err != nil {
		if v, ok := domainerror.AsValidationError(err); ok {
			return "", invalid(v)
		}
		return "", err
	}
	return trimmed, nil
}
