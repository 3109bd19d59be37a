package services

import (
	"github.com/shopspring/decimal"

	"github.com/budgetiq/budget-api/models"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// BuildYearlyData aggregates a year of transactions into 12 calendar months
// plus yearly totals. All 12 months are always present so that two years can
// be compared position by position; transactions outside the year or with a
// zero date are ignored.
func BuildYearlyData(transactions []models.Transaction, year int) models.YearlyComparisonData {
	data := models.YearlyComparisonData{
		Year:        year,
		MonthlyData: make([]models.MonthlyData, 12),
	}
	for i := 0; i < 12; i++ {
		data.MonthlyData[i] = models.MonthlyData{
			Month:       monthNames[i],
			MonthNumber: i + 1,
			Year:        year,
		}
	}

	for _, tx := range transactions {
		if tx.Date.IsZero() || tx.Date.Year() != year {
			continue
		}
		month := &data.MonthlyData[int(tx.Date.Month())-1]
		switch tx.Type {
		case models.TransactionExpense:
			month.TotalSpending = month.TotalSpending.Add(tx.Amount)
			data.TotalSpending = data.TotalSpending.Add(tx.Amount)
		case models.TransactionIncome:
			month.TotalIncome = month.TotalIncome.Add(tx.Amount)
			data.TotalIncome = data.TotalIncome.Add(tx.Amount)
		default:
			continue
		}
		month.TransactionCount++
		data.TransactionCount++
	}

	for i := range data.MonthlyData {
		m := &data.MonthlyData[i]
		m.NetIncome = m.TotalIncome.Sub(m.TotalSpending)
	}
	data.NetIncome = data.TotalIncome.Sub(data.TotalSpending)
	data.AverageMonthlySpending = data.TotalSpending.Div(twelve).Round(2)

	return data
}

// growthPercent is the zero-guarded growth formula shared by every YoY
// figure: a zero previous-year baseline yields 0, not infinity.
func growthPercent(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(hundred).Float64()
	return pct
}

// savingsRate is (income - spending) / income as a percentage, 0 when there
// is no income.
func savingsRate(data models.YearlyComparisonData) float64 {
	if !data.TotalIncome.IsPositive() {
		return 0
	}
	rate, _ := data.TotalIncome.Sub(data.TotalSpending).Div(data.TotalIncome).Mul(hundred).Float64()
	return rate
}

// CompareYears computes growth metrics for the current year against the
// previous one. Callers are responsible for only invoking it when both
// years exist; it does not degrade to single-year input.
func CompareYears(current, previous models.YearlyComparisonData) models.YearOverYearMetrics {
	metrics := models.YearOverYearMetrics{
		SpendingGrowth: growthPercent(current.TotalSpending, previous.TotalSpending),
		IncomeGrowth:   growthPercent(current.TotalIncome, previous.TotalIncome),
		TransactionGrowth: growthPercent(
			decimal.NewFromInt(int64(current.TransactionCount)),
			decimal.NewFromInt(int64(previous.TransactionCount)),
		),
		// Percentage-point delta, deliberately not a ratio.
		SavingsRateChange: savingsRate(current) - savingsRate(previous),
	}

	metrics.MonthlyComparison = make([]models.MonthlyComparison, 12)
	for i := 0; i < 12; i++ {
		cur := monthAt(current, i+1)
		prev := monthAt(previous, i+1)
		metrics.MonthlyComparison[i] = models.MonthlyComparison{
			Month:        monthNames[i],
			MonthNumber:  i + 1,
			CurrentYear:  cur,
			PreviousYear: prev,
			Growth: models.MonthGrowth{
				SpendingGrowth: growthPercent(cur.TotalSpending, prev.TotalSpending),
				IncomeGrowth:   growthPercent(cur.TotalIncome, prev.TotalIncome),
			},
		}
	}

	return metrics
}

// monthAt pairs months by calendar position and tolerates input whose
// monthly slice is not the full 12 entries.
func monthAt(data models.YearlyComparisonData, monthNumber int) models.MonthlyData {
	for _, m := range data.MonthlyData {
		if m.MonthNumber == monthNumber {
			return m
		}
	}
	return models.MonthlyData{
		Month:       monthNames[monthNumber-1],
		MonthNumber: monthNumber,
		Year:        data.Year,
	}
}

// YearsAvailable reports which calendar years appear in the transaction
// history, newest first. The comparison endpoint uses it to decide whether
// a previous-year baseline exists at all.
func YearsAvailable(transactions []models.Transaction) []int {
	seen := make(map[int]bool)
	for _, tx := range transactions {
		if tx.Date.IsZero() {
			continue
		}
		seen[tx.Date.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	for i := 0; i < len(years); i++ {
		for j := i + 1; j < len(years); j++ {
			if years[j] > years[i] {
				years[i], years[j] = years[j], years[i]
			}
		}
	}
	return years
}
