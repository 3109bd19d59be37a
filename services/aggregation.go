package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetiq/budget-api/models"
)

// The analytics engine is a set of pure functions over already-fetched rows.
// Nothing in this file (or insights.go, history.go, forecast.go, yoy.go)
// touches the database or the clock; callers fetch inputs and pass "now"
// where a reference time is needed, so results depend only on arguments.

var hundred = decimal.NewFromInt(100)

// percentOf returns spent/budget*100 as a float, or 0 when budget is zero.
// Every division in the engine goes through this guard or an equivalent one;
// an all-zero account must produce zeros, not errors or NaN.
func percentOf(spent, budget decimal.Decimal) float64 {
	if budget.IsZero() {
		return 0
	}
	pct, _ := spent.Div(budget).Mul(hundred).Float64()
	return pct
}

// Aggregate reduces budgets and transactions into per-category spending and
// portfolio totals. Duplicate budgets for the same category are summed, not
// deduplicated. Empty inputs yield an all-zero summary, never an error.
func Aggregate(budgets []models.Budget, transactions []models.Transaction) models.BudgetSummary {
	spentByCategory := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type != models.TransactionExpense {
			continue
		}
		spentByCategory[tx.CategoryID] = spentByCategory[tx.CategoryID].Add(tx.Amount)
	}

	summary := models.BudgetSummary{
		CategorySpending: make([]models.CategorySpending, 0, len(budgets)),
	}

	for _, budget := range budgets {
		spent := spentByCategory[budget.CategoryID]
		summary.TotalBudget = summary.TotalBudget.Add(budget.Amount)
		summary.CategorySpending = append(summary.CategorySpending, models.CategorySpending{
			CategoryID:   budget.CategoryID,
			CategoryName: budget.CategoryName,
			Budget:       budget.Amount,
			Spent:        spent,
			Percentage:   percentOf(spent, budget.Amount),
		})
	}

	for _, cat := range summary.CategorySpending {
		summary.TotalSpent = summary.TotalSpent.Add(cat.Spent)
	}
	summary.TotalRemaining = summary.TotalBudget.Sub(summary.TotalSpent)
	summary.OverallUtilization = percentOf(summary.TotalSpent, summary.TotalBudget)

	return summary
}

// ComputeStats summarizes the raw transaction list for the insight
// classifier: how many records exist, their average amount, and when the
// account was last active.
func ComputeStats(transactions []models.Transaction) models.TransactionStats {
	stats := models.TransactionStats{Count: len(transactions)}
	if stats.Count == 0 {
		return stats
	}

	var total decimal.Decimal
	var last time.Time
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
		if tx.Date.After(last) {
			last = tx.Date
		}
	}
	stats.AverageAmount = total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	stats.LastActivity = last
	return stats
}
