package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/sajari/regression"

	"StockInsight/internal/calculator"
)

// fitAndPredict trains an ordinary least squares model on
// (time index, SMA short, SMA long, RSI) -> close and extrapolates it
// forward horizon days with the last known indicator values held constant.
func fitAndPredict(in Inputs, horizon int) ([]float64, error) {
	n := len(in.Closes)
	if n-1 < minTrainObservations {
		return nil, fmt.Errorf("%w: regression needs %d observations, have %d",
			calculator.ErrInsufficientData, minTrainObservations, n-1)
	}

	// A constant target makes the design rank-deficient; the solver then
	// returns zero coefficients without an error. Refuse to fit and let the
	// naive path handle it.
	if varianceOf(in.Closes[1:]) == 0 {
		return nil, errors.New("regression target has zero variance")
	}

	r := new(regression.Regression)
	r.SetObserved("close")
	r.SetVar(0, "t")
	r.SetVar(1, "sma_short")
	r.SetVar(2, "sma_long")
	r.SetVar(3, "rsi")

	// Observation i is predicted from the indicators known the day before.
	for i := 1; i < n; i++ {
		r.Train(regression.DataPoint(in.Closes[i], featureRow(in, i, i-1)))
	}
	if err := r.Run(); err != nil {
		return nil, fmt.Errorf("regression fit: %w", err)
	}

	// Sanity-check the fit against the most recent observation. A
	// degenerate solve can succeed yet predict nowhere near the data.
	fitted, err := r.Predict(featureRow(in, n-1, n-2))
	if err != nil {
		return nil, fmt.Errorf("regression predict: %w", err)
	}
	last := in.Closes[n-1]
	if math.IsNaN(fitted) || math.IsInf(fitted, 0) || math.Abs(fitted-last) > 0.5*math.Abs(last) {
		return nil, fmt.Errorf("regression fit rejected: fitted %.4f against close %.4f", fitted, last)
	}

	preds := make([]float64, 0, horizon)
	for day := 1; day <= horizon; day++ {
		p, err := r.Predict(featureRow(in, n+day-1, n-1))
		if err != nil {
			return nil, fmt.Errorf("regression predict: %w", err)
		}
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, errors.New("regression produced a non-finite prediction")
		}
		if p < 0 {
			p = 0
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func varianceOf(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	v := 0.0
	for _, x := range xs {
		v += (x - mean) * (x - mean)
	}
	return v / float64(len(xs))
}

// featureRow builds the feature vector for time index t using the indicator
// values at position idx, substituting the close price (for SMAs) or the
// neutral RSI when a value is missing.
func featureRow(in Inputs, t, idx int) []float64 {
	close := in.Closes[idx]

	smaShort := close
	if idx < len(in.SMAShort) && !math.IsNaN(in.SMAShort[idx]) {
		smaShort = in.SMAShort[idx]
	}
	smaLong := close
	if idx < len(in.SMALong) && !math.IsNaN(in.SMALong[idx]) {
		smaLong = in.SMALong[idx]
	}
	rsi := neutralRSI
	if idx < len(in.RSI) && !math.IsNaN(in.RSI[idx]) {
		rsi = in.RSI[idx]
	}

	return []float64{float64(t), smaShort, smaLong, rsi}
}
