package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData signals that the history is too short for a reliable
// indicator value. Callers recover by omitting the value, never by
// fabricating one.
var ErrInsufficientData = errors.New("insufficient data")

// RSISeries computes the Relative Strength Index over the close prices
// using exponentially-weighted averages of gains and losses with smoothing
// factor 2/(period+1), seeded from the first price change so no warm-up gap
// is left. Requires at least period+1 prices. The returned slice aligns
// with closes; index 0 has no price change and reports NaN.
func RSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return nil, fmt.Errorf("%w: RSI(%d) needs at least %d prices, have %d",
			ErrInsufficientData, period, period+1, len(closes))
	}

	alpha := 2.0 / float64(period+1)
	out := make([]float64, len(closes))
	out[0] = math.NaN()

	var avgGain, avgLoss float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		if i == 1 {
			avgGain = gain
			avgLoss = loss
		} else {
			avgGain = alpha*gain + (1-alpha)*avgGain
			avgLoss = alpha*loss + (1-alpha)*avgLoss
		}

		switch {
		case avgLoss == 0 && avgGain == 0:
			out[i] = 50.0 // no movement at all, report neutral
		case avgLoss == 0:
			out[i] = 100.0 // saturate instead of dividing by zero
		default:
			rs := avgGain / avgLoss
			out[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return out, nil
}
