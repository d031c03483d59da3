// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// translateError maps unique index violations to domainerror.ErrDuplicateKey.
// gorm translates them when TranslateError is enabled; the message checks cover
// connections opened without it.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerror.ErrDuplicateKey
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return domainerror.ErrDuplicateKey
	}
	return err
}
