package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/alert"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/persistencetest"
	"github.com/expense-tracker/backend/internal/pkg/optional"
)

type capturedNotice struct {
	userID uuid.UUID
	notice adapter.BudgetExceededNotice
}

type fakeMailer struct {
	sent []capturedNotice
}

func (m *fakeMailer) QueueBudgetExceeded(_ context.Context, userID uuid.UUID, notice adapter.BudgetExceededNotice) error {
	m.sent = append(m.sent, capturedNotice{userID: userID, notice: notice})
	return nil
}

type ExpenseUseCaseSuite struct {
	suite.Suite
	ctx        context.Context
	now        time.Time
	categories adapter.CategoryRepository
	budgets    adapter.BudgetRepository
	mailer     *fakeMailer
	create     *CreateExpenseUseCase
	get        *GetExpenseUseCase
	list       *ListExpensesUseCase
	update     *UpdateExpenseUseCase
	remove     *DeleteExpenseUseCase
	alice      *entity.User
	bob        *entity.User
	food       *entity.Category
	bobsGolf   *entity.Category
}

func (s *ExpenseUseCaseSuite) SetupTest() {
	db := persistencetest.NewDB(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)

	users := persistence.NewUserRepository(db)
	expenses := persistence.NewExpenseRepository(db)
	s.categories = persistence.NewCategoryRepository(db)
	s.budgets = persistence.NewBudgetRepository(db)
	s.mailer = &fakeMailer{}

	recorder := effects.NewRecorder(nil, nil)
	alerter := alert.NewBudgetAlertUseCase(s.budgets, expenses, s.categories, users, s.mailer, func() time.Time { return s.now })

	s.create = NewCreateExpenseUseCase(expenses, s.categories, recorder, alerter)
	s.get = NewGetExpenseUseCase(expenses)
	s.list = NewListExpensesUseCase(expenses)
	s.update = NewUpdateExpenseUseCase(expenses, s.categories, recorder, alerter)
	s.remove = NewDeleteExpenseUseCase(expenses, recorder)

	s.alice = entity.NewUser(uuid.New(), "alice@example.com", "Alice")
	s.bob = entity.NewUser(uuid.New(), "bob@example.com", "Bob")
	s.Require().NoError(users.Create(s.ctx, s.alice))
	s.Require().NoError(users.Create(s.ctx, s.bob))

	s.food = entity.NewCategory("Food", entity.GlobalOwner{})
	s.bobsGolf = entity.NewCategory("Golf", entity.UserOwner{UserID: s.bob.ID})
	s.Require().NoError(s.categories.Create(s.ctx, s.food))
	s.Require().NoError(s.categories.Create(s.ctx, s.bobsGolf))
}

func TestExpenseUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ExpenseUseCaseSuite))
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func (s *ExpenseUseCaseSuite) requireRule(err error, field string, rule domainerror.ValidationRule) {
	s.Require().ErrorIs(err, domainerror.ErrValidation)
	validationErr, ok := domainerror.AsValidationError(err)
	s.Require().True(ok)
	s.Equal(field, validationErr.Field)
	s.Equal(rule, validationErr.Rule)
}

func (s *ExpenseUseCaseSuite) createFor(user *entity.User, categoryID *uuid.UUID, value, date string) *entity.Expense {
	out, err := s.create.Execute(s.ctx, CreateExpenseInput{
		UserID:     user.ID,
		CategoryID: categoryID,
		Amount:     amount(value),
		Date:       date,
	})
	s.Require().NoError(err)
	return out.Expense
}

func (s *ExpenseUseCaseSuite) TestCreate() {
	out, err := s.create.Execute(s.ctx, CreateExpenseInput{
		UserID:      s.alice.ID,
		CategoryID:  &s.food.ID,
		Amount:      amount("12.50"),
		Date:        "2024-03-05",
		Description: " groceries ",
	})
	s.Require().NoError(err)

	s.Equal(s.alice.ID, out.Expense.UserID)
	s.Equal("groceries", out.Expense.Description)
	s.Equal(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), out.Expense.Date)
}

func (s *ExpenseUseCaseSuite) TestCreateValidation() {
	tests := []struct {
		name  string
		input CreateExpenseInput
		field string
		rule  domainerror.ValidationRule
		code  domainerror.ExpenseErrorCode
	}{
		{"missing amount", CreateExpenseInput{Date: "2024-03-01"}, "amount", domainerror.RuleRequired, domainerror.ErrCodeInvalidAmount},
		{"zero amount", CreateExpenseInput{Amount: amount("0"), Date: "2024-03-01"}, "amount", domainerror.RuleMinValue, domainerror.ErrCodeInvalidAmount},
		{"three decimals", CreateExpenseInput{Amount: amount("1.234"), Date: "2024-03-01"}, "amount", domainerror.RulePrecision, domainerror.ErrCodeInvalidAmount},
		{"bad date", CreateExpenseInput{Amount: amount("1"), Date: "yesterday"}, "date", domainerror.RuleDateFormat, domainerror.ErrCodeInvalidDate},
		{"unknown category", CreateExpenseInput{Amount: amount("1"), Date: "2024-03-01", CategoryID: ptr(uuid.New())}, "category_id", domainerror.RuleExists, domainerror.ErrCodeExpenseCategoryMissing},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.input.UserID = s.alice.ID
			_, err := s.create.Execute(s.ctx, tt.input)
			s.requireRule(err, tt.field, tt.rule)

			var expenseErr *domainerror.ExpenseError
			s.Require().ErrorAs(err, &expenseErr)
			s.Equal(tt.code, expenseErr.Code)
		})
	}
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}

func (s *ExpenseUseCaseSuite) TestCreateRejectsForeignCategory() {
	_, err := s.create.Execute(s.ctx, CreateExpenseInput{
		UserID:     s.alice.ID,
		CategoryID: &s.bobsGolf.ID,
		Amount:     amount("10"),
		Date:       "2024-03-01",
	})
	s.ErrorIs(err, domainerror.ErrUnauthorizedCategoryReference)

	list, err := s.list.Execute(s.ctx, ListExpensesInput{UserID: s.alice.ID})
	s.Require().NoError(err)
	s.Empty(list.Expenses, "nothing is persisted on a rejected reference")
}

func (s *ExpenseUseCaseSuite) TestCrossUserIsolation() {
	mine := s.createFor(s.alice, nil, "5.00", "2024-03-02")
	s.createFor(s.bob, nil, "7.00", "2024-03-03")

	_, err := s.get.Execute(s.ctx, GetExpenseInput{UserID: s.bob.ID, ExpenseID: mine.ID})
	s.ErrorIs(err, domainerror.ErrNotFound)

	_, err = s.update.Execute(s.ctx, UpdateExpenseInput{UserID: s.bob.ID, ExpenseID: mine.ID, Amount: optional.Some(decimal.NewFromInt(1))})
	s.ErrorIs(err, domainerror.ErrNotFound)

	err = s.remove.Execute(s.ctx, DeleteExpenseInput{UserID: s.bob.ID, ExpenseID: mine.ID})
	s.ErrorIs(err, domainerror.ErrNotFound)

	list, err := s.list.Execute(s.ctx, ListExpensesInput{UserID: s.alice.ID})
	s.Require().NoError(err)
	s.Require().Len(list.Expenses, 1)
	s.Equal(mine.ID, list.Expenses[0].ID)
	s.Equal("5.00", list.Expenses[0].Amount.StringFixed(2))
}

func (s *ExpenseUseCaseSuite) TestListNewestFirst() {
	s.createFor(s.alice, nil, "1", "2024-01-10")
	s.createFor(s.alice, nil, "1", "2024-03-10")
	s.createFor(s.alice, nil, "1", "2024-02-10")

	list, err := s.list.Execute(s.ctx, ListExpensesInput{UserID: s.alice.ID})
	s.Require().NoError(err)
	s.Require().Len(list.Expenses, 3)
	s.Equal(time.March, list.Expenses[0].Date.Month())
	s.Equal(time.January, list.Expenses[2].Date.Month())
}

func (s *ExpenseUseCaseSuite) TestPartialUpdate() {
	expense := s.createFor(s.alice, &s.food.ID, "5.00", "2024-03-02")

	var cleared *uuid.UUID
	out, err := s.update.Execute(s.ctx, UpdateExpenseInput{
		UserID:      s.alice.ID,
		ExpenseID:   expense.ID,
		CategoryID:  optional.Some(cleared),
		Description: optional.Some("coffee"),
	})
	s.Require().NoError(err)
	s.Nil(out.Expense.CategoryID)
	s.Equal("coffee", out.Expense.Description)
	s.Equal("5.00", out.Expense.Amount.StringFixed(2), "unset fields keep their value")

	_, err = s.update.Execute(s.ctx, UpdateExpenseInput{
		UserID:     s.alice.ID,
		ExpenseID:  expense.ID,
		CategoryID: optional.Some(&s.bobsGolf.ID),
	})
	s.ErrorIs(err, domainerror.ErrUnauthorizedCategoryReference)

	_, err = s.update.Execute(s.ctx, UpdateExpenseInput{
		UserID:    s.alice.ID,
		ExpenseID: expense.ID,
		Amount:    optional.Some(decimal.Zero),
	})
	s.requireRule(err, "amount", domainerror.RuleMinValue)

	stored, err := s.get.Execute(s.ctx, GetExpenseInput{UserID: s.alice.ID, ExpenseID: expense.ID})
	s.Require().NoError(err)
	s.Nil(stored.Expense.CategoryID)
	s.Equal("5.00", stored.Expense.Amount.StringFixed(2))
}

func (s *ExpenseUseCaseSuite) TestDelete() {
	expense := s.createFor(s.alice, nil, "5.00", "2024-03-02")

	s.Require().NoError(s.remove.Execute(s.ctx, DeleteExpenseInput{UserID: s.alice.ID, ExpenseID: expense.ID}))

	_, err := s.get.Execute(s.ctx, GetExpenseInput{UserID: s.alice.ID, ExpenseID: expense.ID})
	s.ErrorIs(err, domainerror.ErrNotFound)
}

func (s *ExpenseUseCaseSuite) TestBudgetAlertOnlyWhenCrossing() {
	budget := entity.NewBudget(s.alice.ID, s.food.ID, s.now, decimal.RequireFromString("25.00"))
	s.Require().NoError(s.budgets.Create(s.ctx, budget))

	s.createFor(s.alice, &s.food.ID, "10.00", "2024-03-02")
	s.createFor(s.alice, &s.food.ID, "15.00", "2024-03-03")
	s.Empty(s.mailer.sent, "reaching the budget exactly is not overspending")

	last := s.createFor(s.alice, &s.food.ID, "30.00", "2024-03-04")
	s.Require().Len(s.mailer.sent, 1)
	notice := s.mailer.sent[0].notice
	s.Equal(s.alice.ID, s.mailer.sent[0].userID)
	s.Equal("Food", notice.CategoryName)
	s.Equal("55.00", notice.Spent)
	s.Equal("30.00", notice.Overspent)
	s.Equal("2024-03", notice.Month)

	s.createFor(s.alice, &s.food.ID, "1.00", "2024-03-05")
	s.Len(s.mailer.sent, 1, "already over budget, no second alert")

	_, err := s.update.Execute(s.ctx, UpdateExpenseInput{UserID: s.alice.ID, ExpenseID: last.ID, Amount: optional.Some(decimal.RequireFromString("31.00"))})
	s.Require().NoError(err)
	s.Len(s.mailer.sent, 1)

	s.createFor(s.alice, &s.food.ID, "500.00", "2024-02-05")
	s.Len(s.mailer.sent, 1, "past months never alert")
}
