package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetiq/budget-api/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func eqDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func budget(categoryID, name, amount, period string) models.Budget {
	return models.Budget{
		ID:           "b-" + categoryID,
		UserID:       "u1",
		CategoryID:   categoryID,
		CategoryName: name,
		Amount:       dec(amount),
		Period:       period,
	}
}

func tx(categoryID, txType, amount string, date time.Time) models.Transaction {
	return models.Transaction{
		ID:         "t-" + categoryID + "-" + amount,
		UserID:     "u1",
		Amount:     dec(amount),
		Type:       txType,
		CategoryID: categoryID,
		Date:       date,
	}
}

func TestAggregateTotals(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	budgets := []models.Budget{
		budget("groceries", "Groceries", "500", models.PeriodMonthly),
		budget("dining", "Dining", "200", models.PeriodMonthly),
	}
	transactions := []models.Transaction{
		tx("groceries", models.TransactionExpense, "450", day),
		tx("dining", models.TransactionExpense, "240", day),
		tx("salary", models.TransactionIncome, "3000", day),
	}

	summary := Aggregate(budgets, transactions)

	eqDec(t, "700", summary.TotalBudget)
	eqDec(t, "690", summary.TotalSpent)
	eqDec(t, "10", summary.TotalRemaining)
	assert.InDelta(t, 98.57, summary.OverallUtilization, 0.01)

	require.Len(t, summary.CategorySpending, 2)
	assert.Equal(t, "Groceries", summary.CategorySpending[0].CategoryName)
	assert.InDelta(t, 90.0, summary.CategorySpending[0].Percentage, 0.001)
	eqDec(t, "240", summary.CategorySpending[1].Spent)
	assert.InDelta(t, 120.0, summary.CategorySpending[1].Percentage, 0.001)
}

func TestAggregateUtilizationNotCapped(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	summary := Aggregate(
		[]models.Budget{budget("fun", "Fun", "100", models.PeriodMonthly)},
		[]models.Transaction{tx("fun", models.TransactionExpense, "250", day)},
	)

	require.Len(t, summary.CategorySpending, 1)
	assert.InDelta(t, 250.0, summary.CategorySpending[0].Percentage, 0.001)
	assert.InDelta(t, 250.0, summary.OverallUtilization, 0.001)
}

func TestAggregateZeroGuards(t *testing.T) {
	summary := Aggregate(nil, nil)
	eqDec(t, "0", summary.TotalBudget)
	eqDec(t, "0", summary.TotalSpent)
	eqDec(t, "0", summary.TotalRemaining)
	assert.Zero(t, summary.OverallUtilization)
	assert.Empty(t, summary.CategorySpending)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	summary = Aggregate(
		[]models.Budget{budget("misc", "Misc", "0", models.PeriodMonthly)},
		[]models.Transaction{tx("misc", models.TransactionExpense, "40", day)},
	)
	require.Len(t, summary.CategorySpending, 1)
	assert.Zero(t, summary.CategorySpending[0].Percentage)
}

// Duplicate budgets for one category are tolerated: each row reports the
// category's full spend against its own amount, and the totals sum the rows
// as-is, so the spend is counted once per duplicate. Deduplication belongs
// to the write path, not the aggregator.
func TestAggregateDuplicateCategoryBudgets(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	budgets := []models.Budget{
		budget("groceries", "Groceries", "300", models.PeriodMonthly),
		budget("groceries", "Groceries", "200", models.PeriodMonthly),
	}
	transactions := []models.Transaction{
		tx("groceries", models.TransactionExpense, "100", day),
	}

	summary := Aggregate(budgets, transactions)

	require.Len(t, summary.CategorySpending, 2)
	eqDec(t, "100", summary.CategorySpending[0].Spent)
	eqDec(t, "100", summary.CategorySpending[1].Spent)
	assert.InDelta(t, 33.333, summary.CategorySpending[0].Percentage, 0.001)
	assert.InDelta(t, 50.0, summary.CategorySpending[1].Percentage, 0.001)

	eqDec(t, "500", summary.TotalBudget)
	eqDec(t, "200", summary.TotalSpent)
	eqDec(t, "300", summary.TotalRemaining)
	assert.InDelta(t, 40.0, summary.OverallUtilization, 0.001)
}

func TestAggregateIgnoresIncomeForSpending(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	summary := Aggregate(
		[]models.Budget{budget("groceries", "Groceries", "500", models.PeriodMonthly)},
		[]models.Transaction{tx("groceries", models.TransactionIncome, "500", day)},
	)
	eqDec(t, "0", summary.TotalSpent)
	assert.Zero(t, summary.CategorySpending[0].Percentage)
}

func TestComputeStats(t *testing.T) {
	early := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	stats := ComputeStats([]models.Transaction{
		tx("a", models.TransactionExpense, "10", late),
		tx("b", models.TransactionExpense, "20", early),
		tx("c", models.TransactionIncome, "33", early),
	})

	assert.Equal(t, 3, stats.Count)
	eqDec(t, "21", stats.AverageAmount)
	assert.Equal(t, late, stats.LastActivity)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	assert.Zero(t, stats.Count)
	eqDec(t, "0", stats.AverageAmount)
	assert.True(t, stats.LastActivity.IsZero())
}
