package forecast

// defaultDailyDrift is assumed when the history is too short to even
// measure a trailing return.
const defaultDailyDrift = 0.001

// naiveProjection linearly extrapolates the average daily return observed
// over the trailing 5 closes. Used whenever the regression cannot be fit.
func naiveProjection(closes []float64, horizon int) []float64 {
	current := 0.0
	if len(closes) > 0 {
		current = closes[len(closes)-1]
	}

	drift := defaultDailyDrift
	recent := closes
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	if len(recent) >= 2 && recent[0] != 0 {
		change := (recent[len(recent)-1] - recent[0]) / recent[0]
		drift = change / float64(len(recent))
	}

	preds := make([]float64, horizon)
	for i := range preds {
		p := current * (1 + drift*float64(i+1))
		if p < 0 {
			p = 0
		}
		preds[i] = p
	}
	return preds
}
