package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetiq/budget-api/models"
)

const monthKeyLayout = "2006-01"

// weeksPerMonth converts weekly budget amounts to a monthly figure.
var weeksPerMonth = decimal.NewFromFloat(4.33)

var twelve = decimal.NewFromInt(12)

// monthlyAmount normalizes a budget amount to its monthly equivalent.
func monthlyAmount(b models.Budget) decimal.Decimal {
	switch b.Period {
	case models.PeriodWeekly:
		return b.Amount.Mul(weeksPerMonth)
	case models.PeriodYearly:
		return b.Amount.Div(twelve).Round(2)
	default:
		return b.Amount
	}
}

// BuildMonthlySeries buckets expense transactions by calendar month over the
// trailing `months` window ending at `now` and returns one data point per
// month that saw activity, ordered oldest to newest. The series is sparse:
// a month with no transactions and no active budget is dropped, not
// zero-filled, so callers that need a continuous axis must reindex.
// Transactions with a zero date are skipped.
func BuildMonthlySeries(budgets []models.Budget, transactions []models.Transaction, months int, now time.Time) []models.HistoricalDataPoint {
	if months <= 0 {
		months = 12
	}

	// Total active budget, normalized to monthly. The schema has no
	// per-budget start date, so an active budget applies to every month in
	// the window.
	var budgetPerMonth decimal.Decimal
	for _, b := range budgets {
		budgetPerMonth = budgetPerMonth.Add(monthlyAmount(b))
	}

	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	windowEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	spentByMonth := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type != models.TransactionExpense || tx.Date.IsZero() {
			continue
		}
		if tx.Date.Before(windowStart) || !tx.Date.Before(windowEnd) {
			continue
		}
		key := tx.Date.Format(monthKeyLayout)
		spentByMonth[key] = spentByMonth[key].Add(tx.Amount)
	}

	series := make([]models.HistoricalDataPoint, 0, len(spentByMonth))
	for i := 0; i < months; i++ {
		monthStart := windowStart.AddDate(0, i, 0)
		key := monthStart.Format(monthKeyLayout)
		spent, active := spentByMonth[key]
		if !active && budgetPerMonth.IsZero() {
			continue
		}
		series = append(series, models.HistoricalDataPoint{
			Period:      key,
			Date:        monthStart,
			TotalBudget: budgetPerMonth,
			TotalSpent:  spent,
			Utilization: percentOf(spent, budgetPerMonth),
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// AnalyzeTrend compares the mean of the most recent 3 points against the
// mean of the 3 before them. Returns nil with fewer than 2 points; callers
// must treat that as "insufficient data", not as a zero trend.
func AnalyzeTrend(series []models.HistoricalDataPoint) *models.TrendAnalysis {
	if len(series) < 2 {
		return nil
	}

	recentStart := len(series) - 3
	if recentStart <= 0 {
		// Too short for two full 3-point windows; compare halves so the
		// baseline is never empty.
		recentStart = len(series) / 2
	}
	previousStart := len(series) - 6
	if previousStart < 0 {
		previousStart = 0
	}

	recentAvg := meanSpent(series[recentStart:])
	previousAvg := meanSpent(series[previousStart:recentStart])

	var change float64
	if previousAvg.IsPositive() {
		change, _ = recentAvg.Sub(previousAvg).Div(previousAvg).Mul(hundred).Float64()
	}

	direction := "stable"
	if change > 5 {
		direction = "increasing"
	} else if change < -5 {
		direction = "decreasing"
	}

	abs := change
	if abs < 0 {
		abs = -abs
	}

	return &models.TrendAnalysis{
		Direction:   direction,
		Percentage:  abs,
		RecentAvg:   recentAvg.Round(2),
		PreviousAvg: previousAvg.Round(2),
	}
}

func meanSpent(points []models.HistoricalDataPoint) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	var total decimal.Decimal
	for _, p := range points {
		total = total.Add(p.TotalSpent)
	}
	return total.Div(decimal.NewFromInt(int64(len(points))))
}
