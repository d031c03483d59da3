// Package user contains user provisioning and profile use cases.
package user

import (
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	nameField  = "name"
	emailField = "email"
)

// wrap attaches a user error code to a validation failure.
func wrap(err error) error {
	v, ok := domainerror.AsValidationError(err)
	if !ok {
		return err
	}
	code := domainerror.ErrCodeMissingUserFields
	switch {
	case v.Rule == domainerror.RuleUnique:
		code = domainerror.ErrCodeEmailTaken
	case v.Field == nameField:
		code = domainerror.ErrCodeInvalidUserName
	case v.Field == emailField:
		code = domainerror.ErrCodeInvalidUserEmail
	}
	return domainerror.NewUserError(code, v.Message, v)
}

func notFound() error {
	return domainerror.NewUserError(
		domainerror.ErrCodeUserNotFound,
		"user not found",
		domainerror.ErrUserNotFound,
	)
}

func emailTaken() error {
	return wrap(domainerror.NewValidationError(emailField, domainerror.RuleUnique, "email is already in use"))
}
