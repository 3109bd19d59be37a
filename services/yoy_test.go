package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetiq/budget-api/models"
)

func TestBuildYearlyData(t *testing.T) {
	transactions := []models.Transaction{
		tx("groceries", models.TransactionExpense, "400", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
		tx("groceries", models.TransactionExpense, "200", time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)),
		tx("rent", models.TransactionExpense, "1200", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		tx("salary", models.TransactionIncome, "3000", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		// Wrong year and zero date are both ignored.
		tx("groceries", models.TransactionExpense, "999", time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)),
		tx("groceries", models.TransactionExpense, "50", time.Time{}),
	}

	data := BuildYearlyData(transactions, 2024)

	assert.Equal(t, 2024, data.Year)
	require.Len(t, data.MonthlyData, 12)
	assert.Equal(t, "Jan", data.MonthlyData[0].Month)
	assert.Equal(t, 1, data.MonthlyData[0].MonthNumber)
	assert.Equal(t, "Dec", data.MonthlyData[11].Month)

	eqDec(t, "600", data.MonthlyData[0].TotalSpending)
	assert.Equal(t, 2, data.MonthlyData[0].TransactionCount)
	eqDec(t, "1200", data.MonthlyData[6].TotalSpending)
	eqDec(t, "3000", data.MonthlyData[6].TotalIncome)
	eqDec(t, "1800", data.MonthlyData[6].NetIncome)

	// Empty months stay present with zero values.
	eqDec(t, "0", data.MonthlyData[3].TotalSpending)
	assert.Zero(t, data.MonthlyData[3].TransactionCount)

	eqDec(t, "1800", data.TotalSpending)
	eqDec(t, "3000", data.TotalIncome)
	eqDec(t, "1200", data.NetIncome)
	eqDec(t, "150", data.AverageMonthlySpending)
	assert.Equal(t, 4, data.TransactionCount)
}

func TestBuildYearlyDataEmpty(t *testing.T) {
	data := BuildYearlyData(nil, 2024)

	require.Len(t, data.MonthlyData, 12)
	eqDec(t, "0", data.TotalSpending)
	eqDec(t, "0", data.AverageMonthlySpending)
	assert.Zero(t, data.TransactionCount)
}

func TestCompareYearsGrowth(t *testing.T) {
	previous := BuildYearlyData([]models.Transaction{
		tx("rent", models.TransactionExpense, "1000", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
		tx("salary", models.TransactionIncome, "2000", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
	}, 2023)
	current := BuildYearlyData([]models.Transaction{
		tx("rent", models.TransactionExpense, "1200", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		tx("salary", models.TransactionIncome, "2000", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		tx("dining", models.TransactionExpense, "300", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)),
	}, 2024)

	metrics := CompareYears(current, previous)

	assert.InDelta(t, 50.0, metrics.SpendingGrowth, 0.001)
	assert.Zero(t, metrics.IncomeGrowth)
	assert.InDelta(t, 50.0, metrics.TransactionGrowth, 0.001)

	// Savings rate 2023: (2000-1000)/2000 = 50%; 2024: (2000-1500)/2000 = 25%.
	assert.InDelta(t, -25.0, metrics.SavingsRateChange, 0.001)

	require.Len(t, metrics.MonthlyComparison, 12)
	march := metrics.MonthlyComparison[2]
	assert.Equal(t, "Mar", march.Month)
	assert.Equal(t, 3, march.MonthNumber)
	eqDec(t, "1200", march.CurrentYear.TotalSpending)
	eqDec(t, "1000", march.PreviousYear.TotalSpending)
	assert.InDelta(t, 20.0, march.Growth.SpendingGrowth, 0.001)

	// August has no previous-year baseline, so growth stays 0.
	august := metrics.MonthlyComparison[7]
	eqDec(t, "300", august.CurrentYear.TotalSpending)
	assert.Zero(t, august.Growth.SpendingGrowth)
}

func TestCompareYearsZeroBaseline(t *testing.T) {
	previous := BuildYearlyData(nil, 2023)
	current := BuildYearlyData([]models.Transaction{
		tx("rent", models.TransactionExpense, "500", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}, 2024)

	metrics := CompareYears(current, previous)

	assert.Zero(t, metrics.SpendingGrowth)
	assert.Zero(t, metrics.IncomeGrowth)
	assert.Zero(t, metrics.TransactionGrowth)
	assert.Zero(t, metrics.SavingsRateChange)
	for _, m := range metrics.MonthlyComparison {
		assert.Zero(t, m.Growth.SpendingGrowth)
		assert.Zero(t, m.Growth.IncomeGrowth)
	}
}

func TestYearsAvailable(t *testing.T) {
	years := YearsAvailable([]models.Transaction{
		tx("a", models.TransactionExpense, "10", time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)),
		tx("b", models.TransactionExpense, "10", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		tx("c", models.TransactionExpense, "10", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)),
		tx("d", models.TransactionExpense, "10", time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)),
		tx("e", models.TransactionExpense, "10", time.Time{}),
	})

	assert.Equal(t, []int{2024, 2023, 2022}, years)
}
