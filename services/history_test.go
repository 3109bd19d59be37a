package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetiq/budget-api/models"
)

func TestMonthlyAmount(t *testing.T) {
	eqDec(t, "300", monthlyAmount(budget("a", "A", "300", models.PeriodMonthly)))
	eqDec(t, "433", monthlyAmount(budget("b", "B", "100", models.PeriodWeekly)))
	eqDec(t, "100", monthlyAmount(budget("c", "C", "1200", models.PeriodYearly)))
}

func TestBuildMonthlySeriesSparse(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		tx("groceries", models.TransactionExpense, "120", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		tx("groceries", models.TransactionExpense, "80", time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)),
		tx("dining", models.TransactionExpense, "60", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)),
		tx("salary", models.TransactionIncome, "3000", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		// Outside the 12-month window.
		tx("old", models.TransactionExpense, "999", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)),
		// Zero date is skipped, not bucketed into month zero.
		tx("bad", models.TransactionExpense, "50", time.Time{}),
	}

	series := BuildMonthlySeries(nil, transactions, 12, now)

	require.Len(t, series, 2)
	assert.Equal(t, "2024-03", series[0].Period)
	eqDec(t, "200", series[0].TotalSpent)
	assert.Equal(t, "2024-05", series[1].Period)
	eqDec(t, "60", series[1].TotalSpent)
	for _, p := range series {
		eqDec(t, "0", p.TotalBudget)
		assert.Zero(t, p.Utilization)
	}
}

func TestBuildMonthlySeriesWithBudgets(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	budgets := []models.Budget{
		budget("groceries", "Groceries", "300", models.PeriodMonthly),
		budget("coffee", "Coffee", "100", models.PeriodWeekly),
	}
	transactions := []models.Transaction{
		tx("groceries", models.TransactionExpense, "366.50", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),
	}

	series := BuildMonthlySeries(budgets, transactions, 6, now)

	// A non-zero budget keeps every window month on the axis.
	require.Len(t, series, 6)
	assert.Equal(t, "2024-01", series[0].Period)
	assert.Equal(t, "2024-06", series[5].Period)

	// 300 + 100*4.33 per month.
	eqDec(t, "733", series[0].TotalBudget)
	eqDec(t, "0", series[0].TotalSpent)
	assert.Zero(t, series[0].Utilization)
	assert.InDelta(t, 50.0, series[5].Utilization, 0.001)
}

func TestBuildMonthlySeriesDefaultsWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	budgets := []models.Budget{budget("a", "A", "100", models.PeriodMonthly)}

	series := BuildMonthlySeries(budgets, nil, 0, now)
	assert.Len(t, series, 12)
	assert.Equal(t, "2023-07", series[0].Period)
}

func TestAnalyzeTrendInsufficientData(t *testing.T) {
	assert.Nil(t, AnalyzeTrend(nil))
	assert.Nil(t, AnalyzeTrend([]models.HistoricalDataPoint{{TotalSpent: dec("100")}}))
}

func trendSeries(spends ...string) []models.HistoricalDataPoint {
	points := make([]models.HistoricalDataPoint, len(spends))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range spends {
		month := base.AddDate(0, i, 0)
		points[i] = models.HistoricalDataPoint{
			Period:     month.Format(monthKeyLayout),
			Date:       month,
			TotalSpent: dec(s),
		}
	}
	return points
}

func TestAnalyzeTrendIncreasing(t *testing.T) {
	trend := AnalyzeTrend(trendSeries("100", "100", "100", "200", "200", "200"))

	require.NotNil(t, trend)
	assert.Equal(t, "increasing", trend.Direction)
	assert.InDelta(t, 100.0, trend.Percentage, 0.001)
	eqDec(t, "200", trend.RecentAvg)
	eqDec(t, "100", trend.PreviousAvg)
}

func TestAnalyzeTrendDecreasing(t *testing.T) {
	trend := AnalyzeTrend(trendSeries("200", "200", "200", "100", "100", "100"))

	require.NotNil(t, trend)
	assert.Equal(t, "decreasing", trend.Direction)
	assert.InDelta(t, 50.0, trend.Percentage, 0.001)
}

func TestAnalyzeTrendStable(t *testing.T) {
	trend := AnalyzeTrend(trendSeries("100", "100", "100", "103", "103", "103"))

	require.NotNil(t, trend)
	assert.Equal(t, "stable", trend.Direction)
	assert.InDelta(t, 3.0, trend.Percentage, 0.001)
}

func TestAnalyzeTrendZeroBaseline(t *testing.T) {
	trend := AnalyzeTrend(trendSeries("0", "0", "0", "150", "150", "150"))

	require.NotNil(t, trend)
	assert.Equal(t, "stable", trend.Direction)
	assert.Zero(t, trend.Percentage)
}

func TestAnalyzeTrendShortSeries(t *testing.T) {
	// Two points: recent is the last one, previous is the first.
	trend := AnalyzeTrend(trendSeries("100", "150"))

	require.NotNil(t, trend)
	assert.Equal(t, "increasing", trend.Direction)
	assert.InDelta(t, 50.0, trend.Percentage, 0.001)
}
