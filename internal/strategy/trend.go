package strategy

import (
	"math"

	"StockInsight/internal/model"
)

// DefaultSidewaysThreshold is the relative price change below which the
// market is considered to be moving sideways.
const DefaultSidewaysThreshold = 0.02

// ClassifyTrend compares the current price with the final forecasted price.
// A relative change within the threshold is Sideways, otherwise the sign of
// the move decides Uptrend or Downtrend.
func ClassifyTrend(current, forecast, threshold float64) model.Trend {
	if threshold <= 0 {
		threshold = DefaultSidewaysThreshold
	}
	if current == 0 {
		return model.TrendSideways
	}
	change := math.Abs(forecast-current) / current
	switch {
	case change <= threshold:
		return model.TrendSideways
	case forecast > current:
		return model.TrendUp
	default:
		return model.TrendDown
	}
}
