package forecast

import (
	"StockInsight/internal/calculator"
	"StockInsight/internal/model"
)

const (
	// MinHorizon and MaxHorizon bound the number of future days to project.
	MinHorizon = 1
	MaxHorizon = 10

	// ModelLinear fits the regression; ModelFallback forces the naive path.
	ModelLinear   = "linear"
	ModelFallback = "fallback"

	minTrainObservations = 5
	volatilityLookback   = 20
	neutralRSI           = 50.0
)

// Inputs carries the close prices and per-index indicator series the model
// trains on. RSI may be nil (short history) or contain NaN entries; both are
// substituted with neutral values so training never fails on missing data.
type Inputs struct {
	Closes   []float64
	SMAShort []float64
	SMALong  []float64
	RSI      []float64
}

// Result is one projection: horizon predicted prices with per-day
// uncertainty bounds derived from trailing return volatility.
type Result struct {
	Predictions []float64
	Bounds      []model.Bound
	ModelUsed   string
	Note        string // set when the fit degraded to the naive path
}

// Project extrapolates the close price forward horizon days. The linear
// model uses the time index and the latest indicator values as features;
// any failure during fit or predict degrades to the naive projection rather
// than propagating. Every predicted price is clamped to be non-negative.
func Project(in Inputs, horizon int, modelFlag string) Result {
	if horizon < MinHorizon {
		horizon = MinHorizon
	}
	if horizon > MaxHorizon {
		horizon = MaxHorizon
	}

	if modelFlag != ModelFallback {
		if preds, err := fitAndPredict(in, horizon); err == nil {
			return Result{
				Predictions: preds,
				Bounds:      boundsFromVolatility(preds, in.Closes),
				ModelUsed:   ModelLinear,
			}
		}
	}

	preds := naiveProjection(in.Closes, horizon)
	note := "naive projection from trailing returns, low confidence"
	if modelFlag == ModelFallback {
		note = "naive projection requested"
	}
	return Result{
		Predictions: preds,
		Bounds:      boundsFromVolatility(preds, in.Closes),
		ModelUsed:   ModelFallback,
		Note:        note,
	}
}

// boundsFromVolatility derives per-day min/max around each prediction from
// the standard deviation of trailing absolute daily returns, floored at 0.
func boundsFromVolatility(preds, closes []float64) []model.Bound {
	sigma := calculator.ReturnVolatility(closes, volatilityLookback)
	bounds := make([]model.Bound, len(preds))
	for i, p := range preds {
		lo := p * (1 - sigma)
		if lo < 0 {
			lo = 0
		}
		bounds[i] = model.Bound{Min: lo, Max: p * (1 + sigma)}
	}
	return bounds
}
