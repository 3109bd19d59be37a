package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budgetiq/budget-api/middleware"
	"github.com/budgetiq/budget-api/services"
)

// AnalyticsHandler is a thin shim between HTTP and the pure analytics
// functions: it fetches rows, picks the reference time, and serializes the
// result. Sparse or missing history is a 200 with empty data, never an error.
type AnalyticsHandler struct {
	Finance *services.FinanceService
}

func NewAnalyticsHandler(finance *services.FinanceService) *AnalyticsHandler {
	return &AnalyticsHandler{Finance: finance}
}

const maxForecastMonths = 12

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Summary returns month-to-date spending against budgets.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	budgets, err := h.Finance.GetBudgets(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budgets"})
		return
	}

	transactions, err := h.Finance.GetTransactions(ctx, userID, monthStart(time.Now()), time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, services.Aggregate(budgets, transactions))
}

// Insights classifies the month-to-date summary. Transaction stats come from
// the full history so an account with only old activity is not mistaken for
// an empty one.
func (h *AnalyticsHandler) Insights(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	budgets, err := h.Finance.GetBudgets(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budgets"})
		return
	}

	monthToDate, err := h.Finance.GetTransactions(ctx, userID, monthStart(time.Now()), time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	all, err := h.Finance.GetTransactions(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	summary := services.Aggregate(budgets, monthToDate)
	insights := services.ClassifyInsights(summary, services.ComputeStats(all))

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// History returns the monthly series plus its trend. months accepts 6, 12
// or 24 and defaults to 12.
func (h *AnalyticsHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	months := 12
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || (parsed != 6 && parsed != 12 && parsed != 24) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be 6, 12 or 24"})
			return
		}
		months = parsed
	}

	budgets, err := h.Finance.GetBudgets(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budgets"})
		return
	}

	transactions, err := h.Finance.GetTransactions(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	series := services.BuildMonthlySeries(budgets, transactions, months, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"data":  series,
		"trend": services.AnalyzeTrend(series),
	})
}

// Forecast projects spending past the end of the recorded history. months
// defaults to 3 and is capped at 12.
func (h *AnalyticsHandler) Forecast(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	horizon := 3
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxForecastMonths {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and 12"})
			return
		}
		horizon = parsed
	}

	budgets, err := h.Finance.GetBudgets(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budgets"})
		return
	}

	transactions, err := h.Finance.GetTransactions(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	series := services.BuildMonthlySeries(budgets, transactions, 12, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"forecast": services.ForecastSpending(series, horizon),
	})
}

// YearOverYear compares the requested year (default: current) against the
// one before it. With no previous-year activity the comparison is null and
// only the current year's breakdown is returned.
func (h *AnalyticsHandler) YearOverYear(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1970 || parsed > time.Now().Year() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	transactions, err := h.Finance.GetTransactions(ctx, userID, time.Time{}, time.Time{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	current := services.BuildYearlyData(transactions, year)
	previous := services.BuildYearlyData(transactions, year-1)

	response := gin.H{
		"current_year":    current,
		"previous_year":   previous,
		"available_years": services.YearsAvailable(transactions),
		"metrics":         nil,
	}

	if previous.TransactionCount > 0 {
		metrics := services.CompareYears(current, previous)
		response["metrics"] = metrics
	} else {
		// Without a baseline year there is nothing to compare; keep the
		// response shape stable and let the client show the single year.
		response["previous_year"] = nil
	}

	c.JSON(http.StatusOK, response)
}
