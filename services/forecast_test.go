package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastInsufficientHistory(t *testing.T) {
	assert.Empty(t, ForecastSpending(nil, 3))
	assert.Empty(t, ForecastSpending(trendSeries("500"), 3))
	assert.Empty(t, ForecastSpending(trendSeries("500", "500"), 0))
}

func TestForecastStableSeries(t *testing.T) {
	series := trendSeries("500", "500", "500", "500", "500", "500")
	forecast := ForecastSpending(series, 3)

	require.Len(t, forecast, 3)

	// trendSeries starts at 2024-01, so the last point is 2024-06 and the
	// projection picks up from July.
	assert.Equal(t, "2024-07", forecast[0].Month)
	assert.Equal(t, "2024-08", forecast[1].Month)
	assert.Equal(t, "2024-09", forecast[2].Month)

	for _, p := range forecast {
		eqDec(t, "500", p.PredictedSpending)
		eqDec(t, "500", p.Range.Min)
		eqDec(t, "500", p.Range.Max)
	}

	// Zero variance means high confidence, capped below certainty.
	assert.InDelta(t, 95.0, forecast[0].Confidence, 0.001)
	assert.InDelta(t, 92.0, forecast[1].Confidence, 0.001)
	assert.InDelta(t, 84.0, forecast[2].Confidence, 0.001)
}

func TestForecastConfidenceNeverIncreases(t *testing.T) {
	series := trendSeries("100", "900", "150", "800", "200", "700")
	forecast := ForecastSpending(series, 12)

	require.Len(t, forecast, 12)
	for i, p := range forecast {
		assert.GreaterOrEqual(t, p.Confidence, confidenceFloor)
		assert.LessOrEqual(t, p.Confidence, confidenceCeiling)
		if i > 0 {
			assert.LessOrEqual(t, p.Confidence, forecast[i-1].Confidence,
				"confidence rose at step %d", i+1)
		}
	}
}

func TestForecastRangeBracketsPrediction(t *testing.T) {
	series := trendSeries("300", "450", "350", "500", "400", "550")
	forecast := ForecastSpending(series, 6)

	require.Len(t, forecast, 6)
	var prevSpread float64
	for i, p := range forecast {
		assert.True(t, p.Range.Min.LessThanOrEqual(p.PredictedSpending),
			"step %d: min above prediction", i+1)
		assert.True(t, p.Range.Max.GreaterThanOrEqual(p.PredictedSpending),
			"step %d: max below prediction", i+1)
		assert.False(t, p.Range.Min.IsNegative())

		spread, _ := p.Range.Max.Sub(p.Range.Min).Float64()
		if i > 0 {
			assert.GreaterOrEqual(t, spread, prevSpread,
				"step %d: envelope narrowed", i+1)
		}
		prevSpread = spread
	}
}

func TestForecastFollowsTrend(t *testing.T) {
	rising := ForecastSpending(trendSeries("100", "120", "140", "160", "180", "200"), 3)
	require.Len(t, rising, 3)
	for i := 1; i < len(rising); i++ {
		assert.True(t, rising[i].PredictedSpending.GreaterThan(rising[i-1].PredictedSpending),
			"rising history should project rising spend")
	}

	falling := ForecastSpending(trendSeries("200", "180", "160", "140", "120", "100"), 3)
	require.Len(t, falling, 3)
	for i := 1; i < len(falling); i++ {
		assert.True(t, falling[i].PredictedSpending.LessThan(falling[i-1].PredictedSpending))
	}
}

func TestForecastNeverNegative(t *testing.T) {
	// A steep decline extrapolated far enough would cross zero; the
	// projection clamps instead.
	forecast := ForecastSpending(trendSeries("1000", "600", "200", "100", "50", "10"), 12)

	require.Len(t, forecast, 12)
	for _, p := range forecast {
		assert.False(t, p.PredictedSpending.IsNegative())
		assert.False(t, p.Range.Min.IsNegative())
	}
}

func TestForecastUsesTrailingWindow(t *testing.T) {
	// Ancient volatility outside the 6-month window must not affect the
	// estimate: only the trailing flat stretch counts.
	series := trendSeries("9000", "1", "9000", "500", "500", "500", "500", "500", "500")
	forecast := ForecastSpending(series, 1)

	require.Len(t, forecast, 1)
	eqDec(t, "500", forecast[0].PredictedSpending)
	assert.Equal(t, "2024-10", forecast[0].Month)
}
