package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/domain/validation"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController serves the read-only spending views.
type AnalyticsController struct {
	monthlyTotalsUseCase  *analytics.MonthlyTotalsUseCase
	categoryTotalsUseCase *analytics.CategoryTotalsUseCase
	recentActivityUseCase *analytics.RecentActivityUseCase
	budgetVsActualUseCase *analytics.BudgetVsActualUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	monthlyTotalsUseCase *analytics.MonthlyTotalsUseCase,
	categoryTotalsUseCase *analytics.CategoryTotalsUseCase,
	recentActivityUseCase *analytics.RecentActivityUseCase,
	budgetVsActualUseCase *analytics.BudgetVsActualUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		monthlyTotalsUseCase:  monthlyTotalsUseCase,
		categoryTotalsUseCase: categoryTotalsUseCase,
		recentActivityUseCase: recentActivityUseCase,
		budgetVsActualUseCase: budgetVsActualUseCase,
	}
}

// MonthlyExpenses handles GET /analytics/monthly-expenses requests.
func (c *AnalyticsController) MonthlyExpenses(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.monthlyTotalsUseCase.Execute(ctx.Request.Context(), analytics.MonthlyTotalsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "", "")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyExpensesResponse(output.Months))
}

// CategoryExpenses handles GET /analytics/category-expenses requests.
func (c *AnalyticsController) CategoryExpenses(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.categoryTotalsUseCase.Execute(ctx.Request.Context(), analytics.CategoryTotalsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "", "")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryExpensesResponse(output.Categories))
}

// RecentExpenses handles GET /analytics/recent-expenses requests.
func (c *AnalyticsController) RecentExpenses(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.recentActivityUseCase.Execute(ctx.Request.Context(), analytics.RecentActivityInput{UserID: userID})
	if err != nil {
		respondError(ctx, err, "", "")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecentExpensesResponse(output.Expenses))
}

// BudgetVsActual handles GET /analytics/budget-vs-actual requests.
// The optional month query parameter defaults to the current month.
func (c *AnalyticsController) BudgetVsActual(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var month time.Time
	if raw := ctx.Query("month"); raw != "" {
		parsed, err := validation.Month("month", raw)
		if err != nil {
			respondError(ctx, err, "", "")
			return
		}
		month = parsed
	}

	output, err := c.budgetVsActualUseCase.Execute(ctx.Request.Context(), analytics.BudgetVsActualInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		respondError(ctx, err, "", "")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetsVsActualResponse(dto.Month(output.Month), output.Lines))
}
