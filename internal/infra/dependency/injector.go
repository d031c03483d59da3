// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/alert"
	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/effects"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/user"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Externals are the clients that talk to processes outside the database.
// Nil Cache or Events disable caching and event publishing.
type Externals struct {
	Cache        adapter.AnalyticsCache
	Events       adapter.EventPublisher
	EmailSender  adapter.EmailSender
	Tokens       adapter.TokenVerifier
	Clock        adapter.Clock
	HealthChecks []controller.HealthCheck
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
	SeedUseCase *category.SeedGlobalCategoriesUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, ext Externals) (*Injector, error) {
	clock := ext.Clock
	if clock == nil {
		clock = adapter.SystemClock
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Side effects of mutations
	recorder := effects.NewRecorder(ext.Cache, ext.Events)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL, clock)
	budgetAlert := alert.NewBudgetAlertUseCase(budgetRepo, expenseRepo, categoryRepo, userRepo, emailService, clock)

	// Email worker
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	sender := ext.EmailSender
	if sender == nil {
		sender = email.NewMockEmailSender()
	}
	worker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Concurrency:  cfg.Email.Concurrency,
		ClaimTimeout: cfg.Email.ClaimTimeout,
	}, clock)

	// User use cases
	ensureUserUseCase := user.NewEnsureUserUseCase(userRepo)
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, recorder)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, recorder)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, recorder)
	seedCategoriesUseCase := category.NewSeedGlobalCategoriesUseCase(categoryRepo, recorder)

	// Expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, categoryRepo, recorder, budgetAlert)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, categoryRepo, recorder, budgetAlert)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, recorder)

	// Budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, categoryRepo)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo, recorder)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo, recorder)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, recorder)

	// Analytics use cases
	monthlyTotalsUseCase := analytics.NewMonthlyTotalsUseCase(expenseRepo, ext.Cache)
	categoryTotalsUseCase := analytics.NewCategoryTotalsUseCase(expenseRepo, categoryRepo, ext.Cache)
	recentActivityUseCase := analytics.NewRecentActivityUseCase(expenseRepo, categoryRepo, ext.Cache)
	budgetVsActualUseCase := analytics.NewBudgetVsActualUseCase(budgetRepo, expenseRepo, categoryRepo, ext.Cache, clock)

	// Controllers
	healthController := controller.NewHealthController(ext.HealthChecks...)
	userController := controller.NewUserController(getProfileUseCase, updateProfileUseCase)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		getExpenseUseCase,
		createExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)
	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		getBudgetUseCase,
		createBudgetUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)
	analyticsController := controller.NewAnalyticsController(
		monthlyTotalsUseCase,
		categoryTotalsUseCase,
		recentActivityUseCase,
		budgetVsActualUseCase,
	)

	// Middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(ext.Tokens, ensureUserUseCase)

	r := router.NewRouter(
		healthController,
		userController,
		categoryController,
		expenseController,
		budgetController,
		analyticsController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: worker,
		SeedUseCase: seedCategoriesUseCase,
	}, nil
}
