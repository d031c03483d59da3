package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

var (
	userID = uuid.New()
	march  = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func expense(amount string, date time.Time, category *entity.Category) *entity.Expense {
	var categoryID *uuid.UUID
	if category != nil {
		id := category.ID
		categoryID = &id
	}
	return entity.NewExpense(userID, categoryID, money(amount), date, "")
}

func TestMonthlyTotals(t *testing.T) {
	food := entity.NewCategory("Food", entity.GlobalOwner{})
	expenses := []*entity.Expense{
		expense("10.10", day(2024, time.March, 3), food),
		expense("5.00", day(2024, time.January, 20), nil),
		expense("0.20", day(2024, time.March, 31), nil),
		expense("7.70", day(2023, time.December, 1), food),
	}

	totals := MonthlyTotals(expenses)

	require.Len(t, totals, 3)
	assert.Equal(t, "2023-12", totals[0].Month)
	assert.Equal(t, "2024-01", totals[1].Month)
	assert.Equal(t, "2024-03", totals[2].Month)
	assert.Equal(t, "10.30", totals[2].Total.StringFixed(2))

	sum := decimal.Zero
	for _, m := range totals {
		sum = sum.Add(m.Total)
	}
	assert.Equal(t, "23.00", sum.StringFixed(2), "monthly totals must add up to every expense")
}

func TestMonthlyTotals_Empty(t *testing.T) {
	totals := MonthlyTotals(nil)
	assert.NotNil(t, totals)
	assert.Empty(t, totals)
}

func TestMonthlyTotals_NoFloatDrift(t *testing.T) {
	var expenses []*entity.Expense
	for i := 0; i < 10; i++ {
		expenses = append(expenses, expense("0.10", day(2024, time.March, 1), nil))
	}
	totals := MonthlyTotals(expenses)
	require.Len(t, totals, 1)
	assert.True(t, totals[0].Total.Equal(money("1.00")))
}

func TestCategoryTotals(t *testing.T) {
	food := entity.NewCategory("Food", entity.GlobalOwner{})
	rent := entity.NewCategory("Rent", entity.UserOwner{UserID: userID})
	deleted := entity.NewCategory("Gone", entity.UserOwner{UserID: userID})

	expenses := []*entity.Expense{
		expense("10.00", day(2024, time.March, 1), food),
		expense("15.00", day(2024, time.March, 2), food),
		expense("900.00", day(2024, time.March, 3), rent),
		expense("1000.00", day(2024, time.March, 4), nil),
		expense("50.00", day(2024, time.March, 5), deleted),
	}

	totals := CategoryTotals(expenses, []*entity.Category{food, rent})

	require.Len(t, totals, 2)
	assert.Equal(t, "Rent", totals[0].CategoryName)
	assert.Equal(t, "900.00", totals[0].Total.StringFixed(2))
	assert.Equal(t, "Food", totals[1].CategoryName)
	assert.Equal(t, "25.00", totals[1].Total.StringFixed(2))
}

func TestCategoryTotals_TiesOrderedByCategoryID(t *testing.T) {
	a := entity.NewCategory("A", entity.GlobalOwner{})
	b := entity.NewCategory("B", entity.GlobalOwner{})
	expenses := []*entity.Expense{
		expense("10.00", day(2024, time.March, 1), a),
		expense("10.00", day(2024, time.March, 1), b),
	}

	totals := CategoryTotals(expenses, []*entity.Category{a, b})

	require.Len(t, totals, 2)
	assert.True(t, totals[0].CategoryID.String() < totals[1].CategoryID.String())
}

func TestCategoryTotals_SameNameAcrossScopesSharesRow(t *testing.T) {
	globalFood := entity.NewCategory("Food", entity.GlobalOwner{})
	privateFood := entity.NewCategory("Food", entity.UserOwner{UserID: userID})
	rent := entity.NewCategory("Rent", entity.UserOwner{UserID: userID})
	expenses := []*entity.Expense{
		expense("10.00", day(2024, time.March, 1), globalFood),
		expense("5.00", day(2024, time.March, 2), privateFood),
		expense("12.00", day(2024, time.March, 3), rent),
	}

	totals := CategoryTotals(expenses, []*entity.Category{globalFood, privateFood, rent})

	require.Len(t, totals, 2)
	assert.Equal(t, "Food", totals[0].CategoryName)
	assert.Equal(t, "15.00", totals[0].Total.StringFixed(2))
	smallest := globalFood.ID
	if privateFood.ID.String() < smallest.String() {
		smallest = privateFood.ID
	}
	assert.Equal(t, smallest, totals[0].CategoryID)
	assert.Equal(t, "Rent", totals[1].CategoryName)
}

func TestRecentActivity(t *testing.T) {
	food := entity.NewCategory("Food", entity.GlobalOwner{})
	gone := entity.NewCategory("Gone", entity.GlobalOwner{})

	var expenses []*entity.Expense
	for d := 1; d <= 7; d++ {
		expenses = append(expenses, expense("1.00", day(2024, time.March, d), food))
	}
	expenses[6].CategoryID = nil
	goneID := gone.ID
	expenses[5].CategoryID = &goneID

	recent := RecentActivity(expenses, []*entity.Category{food}, DefaultRecentLimit)

	require.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		assert.True(t, recent[i-1].Expense.Date.After(recent[i].Expense.Date), "dates must be strictly descending")
	}
	assert.Equal(t, day(2024, time.March, 7), recent[0].Expense.Date)
	assert.Equal(t, entity.UncategorizedName, recent[0].CategoryName)
	assert.Equal(t, entity.UncategorizedName, recent[1].CategoryName, "unresolved category falls back")
	assert.Equal(t, "Food", recent[2].CategoryName)
}

func TestRecentActivity_TieBreaksOnCreation(t *testing.T) {
	first := expense("1.00", day(2024, time.March, 1), nil)
	second := expense("2.00", day(2024, time.March, 1), nil)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	recent := RecentActivity([]*entity.Expense{first, second}, nil, DefaultRecentLimit)

	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].Expense.ID)
}

func TestBudgetVsActual(t *testing.T) {
	food := entity.NewCategory("Food", entity.GlobalOwner{})
	transport := entity.NewCategory("Transport", entity.GlobalOwner{})
	health := entity.NewCategory("Health", entity.GlobalOwner{})
	categories := []*entity.Category{food, transport, health}

	budgets := []*entity.Budget{
		entity.NewBudget(userID, food.ID, march, money("25.00")),
		entity.NewBudget(userID, transport.ID, march, money("40.00")),
		entity.NewBudget(userID, food.ID, march.AddDate(0, -1, 0), money("999.00")),
	}
	expenses := []*entity.Expense{
		expense("10.00", day(2024, time.March, 2), food),
		expense("20.00", day(2024, time.March, 15), food),
		expense("30.00", time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC), food),
		expense("500.00", day(2024, time.April, 1), food),
		expense("70.00", day(2024, time.March, 4), health),
	}

	lines := BudgetVsActual(budgets, expenses, categories, march)

	require.Len(t, lines, 2, "only budgets for the month are reported; unbudgeted spending is not")

	foodLine := lines[0]
	assert.Equal(t, "Food", foodLine.CategoryName)
	assert.Equal(t, "60.00", foodLine.Spent.StringFixed(2))
	assert.True(t, foodLine.Remaining.IsZero())
	assert.Equal(t, "35.00", foodLine.Overspent.StringFixed(2))

	transportLine := lines[1]
	assert.Equal(t, "Transport", transportLine.CategoryName)
	assert.True(t, transportLine.Spent.IsZero())
	assert.Equal(t, "40.00", transportLine.Remaining.StringFixed(2))
	assert.True(t, transportLine.Overspent.IsZero())
}

func TestBudgetVsActual_Empty(t *testing.T) {
	lines := BudgetVsActual(nil, nil, nil, march)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestSpentIn(t *testing.T) {
	food := entity.NewCategory("Food", entity.GlobalOwner{})
	expenses := []*entity.Expense{
		expense("10.00", day(2024, time.March, 2), food),
		expense("5.00", day(2024, time.February, 29), food),
		expense("7.00", day(2024, time.March, 3), nil),
	}
	assert.Equal(t, "10.00", SpentIn(expenses, food.ID, march).StringFixed(2))
}
