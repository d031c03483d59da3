// Package validation holds field rules shared by the mutation use cases.
// Every failure is a *domainerror.ValidationError naming the field and rule.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxTextLength is the longest name or description accepted.
const MaxTextLength = 255

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// MaxAmount is the largest amount the decimal(15,2) money columns hold.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// MinExpenseAmount is the smallest expense amount accepted.
var MinExpenseAmount = decimal.RequireFromString("0.01")

// RequiredText trims s and checks it is non-empty and at most MaxTextLength characters.
func RequiredText(field, s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", domainerror.NewValidationError(field, domainerror.RuleRequired, field+" is required")
	}
	return trimmed, MaxLength(field, trimmed)
}

// MaxLength checks s is at most MaxTextLength characters.
func MaxLength(field, s string) error {
	if utf8.RuneCountInString(s) > MaxTextLength {
		return domainerror.NewValidationError(
			field,
			domainerror.RuleMaxLength,
			fmt.Sprintf("%s must not exceed %d characters", field, MaxTextLength),
		)
	}
	return nil
}

// Money checks amount lies in [min, MaxAmount] and has no more than two fractional digits.
func Money(field string, amount, min decimal.Decimal) error {
	if amount.LessThan(min) {
		return domainerror.NewValidationError(
			field,
			domainerror.RuleMinValue,
			fmt.Sprintf("%s must be at least %s", field, min.StringFixed(2)),
		)
	}
	if amount.GreaterThan(MaxAmount) {
		return domainerror.NewValidationError(
			field,
			domainerror.RuleMaxValue,
			fmt.Sprintf("%s must be at most %s", field, MaxAmount.StringFixed(2)),
		)
	}
	if !amount.Equal(amount.Round(2)) {
		return domainerror.NewValidationError(field, domainerror.RulePrecision, field+" must have at most 2 decimal places")
	}
	return nil
}

// Date parses a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp into UTC.
func Date(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domainerror.NewValidationError(field, domainerror.RuleRequired, field+" is required")
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, domainerror.NewValidationError(
		field,
		domainerror.RuleDateFormat,
		field+" must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
	)
}

// Month parses YYYY-MM or YYYY-MM-01 into the first of that month, 00:00 UTC.
// A full date on any other day fails with RuleFirstOfMonth.
func Month(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domainerror.NewValidationError(field, domainerror.RuleRequired, field+" is required")
	}
	if t, err := time.Parse(monthLayout, s); err == nil {
		return entity.FirstOfMonth(t), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domainerror.NewValidationError(field, domainerror.RuleDateFormat, field+" must be YYYY-MM or YYYY-MM-01")
	}
	if t.Day() != 1 {
		return time.Time{}, domainerror.NewValidationError(field, domainerror.RuleFirstOfMonth, field+" must be the first day of a month")
	}
	return entity.FirstOfMonth(t), nil
}

// Email trims and lower-cases s and checks it is a bare address.
func Email(field, s string) (string, error) {
	normalized := entity.NormalizeEmail(s)
	if normalized == "" {
		return "", domainerror.NewValidationError(field, domainerror.RuleRequired, field+" is required")
	}
	if err := MaxLength(field, normalized); err != nil {
		return "", err
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", domainerror.NewValidationError(field, domainerror.RuleEmailFormat, field+" must be a valid email address")
	}
	return normalized, nil
}
