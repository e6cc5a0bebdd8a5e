package calculator

import "errors"

// SMASeries computes the simple moving average of the close prices over the
// given window. The first window-1 points use an expanding window (average
// of however many points are available), so every index has a defined value
// even for short series.
func SMASeries(closes []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(closes) == 0 {
		return nil, errors.New("no prices provided")
	}
	out := make([]float64, len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= closes[i-window]
		}
		out[i] = sum / float64(n)
	}
	return out, nil
}
