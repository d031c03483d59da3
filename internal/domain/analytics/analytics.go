// Package analytics reduces a principal's expense and budget rows into the
// read-only analytics views. The reducers are pure: callers pass rows already
// filtered to the principal and, where a view depends on "now", the month.
package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// MonthKeyLayout formats the month an expense falls in.
const MonthKeyLayout = "2006-01"

// DefaultRecentLimit is the number of expenses in the recent activity view.
const DefaultRecentLimit = 5

// MonthTotal is the sum of expenses in one calendar month.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// CategoryTotal is the sum of expenses in one category.
type CategoryTotal struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// RecentExpense is an expense annotated with its resolved category name.
type RecentExpense struct {
	Expense      *entity.Expense `json:"expense"`
	CategoryName string          `json:"category_name"`
}

// BudgetLine compares one budget with what was spent in its category and month.
type BudgetLine struct {
	BudgetID     uuid.UUID       `json:"budget_id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Month        time.Time       `json:"month"`
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Overspent    decimal.Decimal `json:"overspent"`
}

// MonthKey returns the YYYY-MM key for t in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthKeyLayout)
}

// MonthlyTotals groups expenses by calendar month, ascending. Months without expenses are omitted.
func MonthlyTotals(expenses []*entity.Expense) []MonthTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		key := MonthKey(e.Date)
		sums[key] = sums[key].Add(e.Amount)
	}

	totals := make([]MonthTotal, 0, len(sums))
	for month, total := range sums {
		totals = append(totals, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month < totals[j].Month
	})
	return totals
}

// CategoryTotals sums expenses per category name, descending by total. A
// private category and a global one with the same name share one row, which
// carries the smallest category id of the group; ties on total are ordered by it.
// Uncategorized expenses and expenses whose category does not resolve are excluded.
func CategoryTotals(expenses []*entity.Expense, categories []*entity.Category) []CategoryTotal {
	index := indexCategories(categories)
	groups := make(map[string]*CategoryTotal)
	for _, e := range expenses {
		if e.CategoryID == nil {
			continue
		}
		c, ok := index[*e.CategoryID]
		if !ok {
			continue
		}
		g, ok := groups[c.Name]
		if !ok {
			g = &CategoryTotal{CategoryID: c.ID, CategoryName: c.Name}
			groups[c.Name] = g
		}
		if c.ID.String() < g.CategoryID.String() {
			g.CategoryID = c.ID
		}
		g.Total = g.Total.Add(e.Amount)
	}

	totals := make([]CategoryTotal, 0, len(groups))
	for _, g := range groups {
		totals = append(totals, *g)
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].CategoryID.String() < totals[j].CategoryID.String()
	})
	return totals
}

// RecentActivity returns up to limit expenses, newest date first. Ties on date
// fall back to creation time and then id, both descending.
func RecentActivity(expenses []*entity.Expense, categories []*entity.Category, limit int) []RecentExpense {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	index := indexCategories(categories)

	sorted := make([]*entity.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	recent := make([]RecentExpense, len(sorted))
	for i, e := range sorted {
		recent[i] = RecentExpense{
			Expense:      e,
			CategoryName: categoryName(index, e.CategoryID),
		}
	}
	return recent
}

// BudgetVsActual reports one line per budget for month. Spending is summed from
// expenses in the budget's category dated within month. Categories with spending
// but no budget are not reported.
func BudgetVsActual(budgets []*entity.Budget, expenses []*entity.Expense, categories []*entity.Category, month time.Time) []BudgetLine {
	index := indexCategories(categories)
	start, end := entity.MonthBounds(month)

	spent := make(map[uuid.UUID]decimal.Decimal)
	for _, e := range expenses {
		if e.CategoryID == nil || e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		spent[*e.CategoryID] = spent[*e.CategoryID].Add(e.Amount)
	}

	lines := make([]BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		if !b.Month.Equal(start) {
			continue
		}
		s := spent[b.CategoryID]
		lines = append(lines, BudgetLine{
			BudgetID:     b.ID,
			CategoryID:   b.CategoryID,
			CategoryName: categoryName(index, &b.CategoryID),
			Month:        start,
			Budget:       b.Amount,
			Spent:        s,
			Remaining:    decimal.Max(decimal.Zero, b.Amount.Sub(s)),
			Overspent:    decimal.Max(decimal.Zero, s.Sub(b.Amount)),
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].CategoryName != lines[j].CategoryName {
			return lines[i].CategoryName < lines[j].CategoryName
		}
		return lines[i].BudgetID.String() < lines[j].BudgetID.String()
	})
	return lines
}

// SpentIn sums the expenses in categoryID dated within month.
func SpentIn(expenses []*entity.Expense, categoryID uuid.UUID, month time.Time) decimal.Decimal {
	start, end := entity.MonthBounds(month)
	total := decimal.Zero
	for _, e := range expenses {
		if e.InCategory(categoryID) && !e.Date.Before(start) && e.Date.Before(end) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func indexCategories(categories []*entity.Category) map[uuid.UUID]*entity.Category {
	index := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		index[c.ID] = c
	}
	return index
}

func categoryName(index map[uuid.UUID]*entity.Category, id *uuid.UUID) string {
	if id == nil {
		return entity.UncategorizedName
	}
	if c, ok := index[*id]; ok {
		return c.Name
	}
	return entity.UncategorizedName
}
