package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetiq/budget-api/models"
)

// Forecast tuning. The estimate is a trailing average with a linear trend
// adjustment; the envelope widens and the confidence decays with each step
// out, and confidence is never allowed to increase with horizon distance.
const (
	forecastWindow     = 6    // trailing months feeding the estimate
	confidenceFloor    = 5.0  // never report less than this
	confidenceCeiling  = 95.0 // a projection is never near-certain
	confidenceDecay    = 8.0  // per horizon step
	rangeSpreadPerStep = 0.25 // margin growth per horizon step
)

// ForecastSpending projects `horizon` months past the end of the series.
// With fewer than 2 historical points there is nothing to extrapolate and
// the result is empty rather than a fabricated projection.
func ForecastSpending(series []models.HistoricalDataPoint, horizon int) []models.ForecastPoint {
	if len(series) < 2 || horizon <= 0 {
		return []models.ForecastPoint{}
	}

	recent := series
	if len(recent) > forecastWindow {
		recent = recent[len(recent)-forecastWindow:]
	}

	values := make([]float64, len(recent))
	for i, p := range recent {
		values[i], _ = p.TotalSpent.Float64()
	}

	avg := mean(values)
	stddev := math.Sqrt(variance(values))
	trendPct := halfSplitTrend(values)

	baseConfidence := 50.0
	if avg > 0 {
		baseConfidence = math.Max(20, 100-(stddev/avg)*100)
	}

	lastMonth, err := time.Parse(monthKeyLayout, series[len(series)-1].Period)
	if err != nil {
		lastMonth = series[len(series)-1].Date
	}

	forecast := make([]models.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		predicted := avg + (trendPct/100)*avg*float64(i)
		if predicted < 0 {
			predicted = 0
		}

		margin := stddev * 1.5 * (1 + rangeSpreadPerStep*float64(i-1))
		low := predicted - margin
		if low < 0 {
			low = 0
		}

		confidence := baseConfidence - confidenceDecay*float64(i-1)
		confidence = math.Min(confidenceCeiling, math.Max(confidenceFloor, confidence))

		forecast = append(forecast, models.ForecastPoint{
			Month:             lastMonth.AddDate(0, i, 0).Format(monthKeyLayout),
			PredictedSpending: decimal.NewFromFloat(predicted).Round(2),
			Confidence:        confidence,
			Range: models.ForecastRange{
				Min: decimal.NewFromFloat(low).Round(2),
				Max: decimal.NewFromFloat(predicted + margin).Round(2),
			},
		})
	}

	return forecast
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(values))
}

// halfSplitTrend compares the average of the first half of the window to
// the second half and returns the change as a percentage of the first.
func halfSplitTrend(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mid := len(values) / 2
	firstAvg := mean(values[:mid])
	secondAvg := mean(values[mid:])
	if firstAvg <= 0 {
		return 0
	}
	return (secondAvg - firstAvg) / firstAvg * 100
}
