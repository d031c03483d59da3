// Package alert notifies users when their spending passes a budget.
package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/analytics"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CheckBudgetInput describes an expense write that has just been committed.
type CheckBudgetInput struct {
	Expense *entity.Expense
	// Previous is the expense as it was before an update; nil for creates.
	Previous *entity.Expense
}

// CheckBudgetOutput reports whether an alert was queued.
type CheckBudgetOutput struct {
	Notified bool
	Spent    decimal.Decimal
}

// BudgetAlertUseCase queues an email the first time a write pushes a month's
// spending in a category past its budget. Only the current month is checked.
type BudgetAlertUseCase struct {
	budgetRepo   adapter.BudgetRepository
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
	mailer       adapter.AlertMailer
	now          adapter.Clock
}

// NewBudgetAlertUseCase creates a new BudgetAlertUseCase instance.
func NewBudgetAlertUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	mailer adapter.AlertMailer,
	now adapter.Clock,
) *BudgetAlertUseCase {
	if now == nil {
		now = adapter.SystemClock
	}
	return &BudgetAlertUseCase{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		now:          now,
	}
}

// Execute compares spending before and after the write against the budget.
func (uc *BudgetAlertUseCase) Execute(ctx context.Context, input CheckBudgetInput) (*CheckBudgetOutput, error) {
	expense := input.Expense
	if expense == nil || expense.CategoryID == nil {
		return &CheckBudgetOutput{}, nil
	}

	month := entity.FirstOfMonth(expense.Date)
	if !month.Equal(entity.FirstOfMonth(uc.now())) {
		return &CheckBudgetOutput{}, nil
	}

	budget, err := uc.budgetRepo.FindByUserCategoryMonth(ctx, expense.UserID, *expense.CategoryID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	if budget == nil {
		return &CheckBudgetOutput{}, nil
	}

	start, end := entity.MonthBounds(month)
	expenses, err := uc.expenseRepo.FindByUserBetween(ctx, expense.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load month expenses: %w", err)
	}

	after := analytics.SpentIn(expenses, budget.CategoryID, month)
	before := after.Sub(expense.Amount)
	if prev := input.Previous; prev != nil && prev.InCategory(budget.CategoryID) && entity.FirstOfMonth(prev.Date).Equal(month) {
		before = before.Add(prev.Amount)
	}

	if before.GreaterThan(budget.Amount) || !after.GreaterThan(budget.Amount) {
		return &CheckBudgetOutput{Spent: after}, nil
	}

	user, err := uc.userRepo.FindByID(ctx, expense.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	category, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	notice := adapter.BudgetExceededNotice{
		CategoryID:   budget.CategoryID,
		MonthStart:   month,
		UserName:     user.Name,
		UserEmail:    user.Email,
		CategoryName: category.Name,
		Month:        analytics.MonthKey(month),
		Budget:       budget.Amount.StringFixed(2),
		Spent:        after.StringFixed(2),
		Overspent:    after.Sub(budget.Amount).StringFixed(2),
	}
	err = uc.mailer.QueueBudgetExceeded(ctx, user.ID, notice)
	if errors.Is(err, domainerror.ErrEmailAlreadyQueued) {
		return &CheckBudgetOutput{Spent: after}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to queue budget alert: %w", err)
	}

	return &CheckBudgetOutput{Notified: true, Spent: after}, nil
}
