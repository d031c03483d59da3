package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Money formats an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Date formats a calendar date as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Month formats a budget month as YYYY-MM.
func Month(t time.Time) string {
	return t.UTC().Format(monthLayout)
}
