package calculator

import "math"

// DefaultVolatility is used when the history has too few returns to measure
// volatility, or the measured value is zero.
const DefaultVolatility = 0.02

// ReturnVolatility returns the sample standard deviation of the trailing
// lookback absolute daily percentage returns. Falls back to
// DefaultVolatility with fewer than 2 return observations or a
// zero/undefined result.
func ReturnVolatility(closes []float64, lookback int) float64 {
	if len(closes) < 3 || lookback <= 0 {
		return DefaultVolatility
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, math.Abs(closes[i]-closes[i-1])/closes[i-1])
	}
	if len(returns) > lookback {
		returns = returns[len(returns)-lookback:]
	}
	if len(returns) < 2 {
		return DefaultVolatility
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	sigma := math.Sqrt(variance)
	if sigma == 0 || math.IsNaN(sigma) {
		return DefaultVolatility
	}
	return sigma
}
