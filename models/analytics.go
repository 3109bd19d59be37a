package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Derived analytics values. Everything in this file is recomputed from the
// source rows on every request and never written back to the database.

type CategorySpending struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Percentage   float64         `json:"percentage"` // spent/budget*100, 0 when budget is 0
}

type BudgetSummary struct {
	TotalBudget        decimal.Decimal    `json:"total_budget"`
	TotalSpent         decimal.Decimal    `json:"total_spent"`
	TotalRemaining     decimal.Decimal    `json:"total_remaining"`
	OverallUtilization float64            `json:"overall_utilization"`
	CategorySpending   []CategorySpending `json:"category_spending"`
}

// TransactionStats carries the raw-transaction figures the insight
// classifier needs alongside the budget aggregates.
type TransactionStats struct {
	Count         int             `json:"count"`
	AverageAmount decimal.Decimal `json:"average_amount"`
	LastActivity  time.Time       `json:"last_activity"`
}

// Insight types. Priority is derived from the type via a fixed table in the
// services package; it is never stored independently.
const (
	InsightBudgetWarning   = "budget_warning"
	InsightWarning         = "warning"
	InsightSpendingPattern = "spending_pattern"
	InsightTrend           = "trend"
	InsightBudgetHealth    = "budget_health"
	InsightCategoryAlert   = "category_alert"
	InsightEfficiency      = "efficiency"
	InsightDataQuality     = "data_quality"
	InsightNoData          = "no-data"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Insight struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Value       string `json:"value,omitempty"`
	Trend       string `json:"trend,omitempty"` // up | down | stable
	Action      string `json:"action,omitempty"`
}

// HistoricalDataPoint is one calendar month of aggregate activity. Months
// with no transactions and no active budget are omitted from series, not
// zero-filled.
type HistoricalDataPoint struct {
	Period      string          `json:"period"` // YYYY-MM
	Date        time.Time       `json:"date"`   // first day of the month
	TotalBudget decimal.Decimal `json:"total_budget"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	Utilization float64         `json:"utilization"`
}

type TrendAnalysis struct {
	Direction   string          `json:"direction"` // increasing | decreasing | stable
	Percentage  float64         `json:"percentage"`
	RecentAvg   decimal.Decimal `json:"recent_avg"`
	PreviousAvg decimal.Decimal `json:"previous_avg"`
}

type ForecastRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type ForecastPoint struct {
	Month             string          `json:"month"` // YYYY-MM
	PredictedSpending decimal.Decimal `json:"predicted_spending"`
	Confidence        float64         `json:"confidence"` // 0-100
	Range             ForecastRange   `json:"range"`
}

// ============================================================================
// YEAR-OVER-YEAR
// ============================================================================

type MonthlyData struct {
	Month            string          `json:"month"` // Jan, Feb, ...
	MonthNumber      int             `json:"month_number"`
	Year             int             `json:"year"`
	TotalSpending    decimal.Decimal `json:"total_spending"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	NetIncome        decimal.Decimal `json:"net_income"`
	TransactionCount int             `json:"transaction_count"`
}

type YearlyComparisonData struct {
	Year                   int             `json:"year"`
	MonthlyData            []MonthlyData   `json:"monthly_data"` // always 12 entries
	TotalSpending          decimal.Decimal `json:"total_spending"`
	TotalIncome            decimal.Decimal `json:"total_income"`
	NetIncome              decimal.Decimal `json:"net_income"`
	AverageMonthlySpending decimal.Decimal `json:"average_monthly_spending"`
	TransactionCount       int             `json:"transaction_count"`
}

type MonthGrowth struct {
	SpendingGrowth float64 `json:"spending_growth"`
	IncomeGrowth   float64 `json:"income_growth"`
}

type MonthlyComparison struct {
	Month        string      `json:"month"`
	MonthNumber  int         `json:"month_number"`
	CurrentYear  MonthlyData `json:"current_year"`
	PreviousYear MonthlyData `json:"previous_year"`
	Growth       MonthGrowth `json:"growth"`
}

type YearOverYearMetrics struct {
	SpendingGrowth    float64             `json:"spending_growth"`
	IncomeGrowth      float64             `json:"income_growth"`
	SavingsRateChange float64             `json:"savings_rate_change"` // percentage points
	TransactionGrowth float64             `json:"transaction_growth"`
	MonthlyComparison []MonthlyComparison `json:"monthly_comparison"`
}
