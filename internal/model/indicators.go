package model

// IndicatorSet holds the latest computed indicator values.
// RSI is nil when the history is too short to define it.
type IndicatorSet struct {
	SMAShort float64  `json:"sma_short"`
	SMALong  float64  `json:"sma_long"`
	RSI      *float64 `json:"rsi,omitempty"`
}

// RSIOr returns the RSI value, or def when RSI is undefined.
func (s IndicatorSet) RSIOr(def float64) float64 {
	if s.RSI == nil {
		return def
	}
	return *s.RSI
}
