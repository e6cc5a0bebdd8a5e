package model

import "time"

// Trend is the coarse directional classification of the forecast.
type Trend string

const (
	TrendUp       Trend = "Uptrend"
	TrendDown     Trend = "Downtrend"
	TrendSideways Trend = "Sideways"
)

// Signal is the discrete trading recommendation.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// Sentiment is the presentational market-mood label.
type Sentiment string

const (
	SentimentBullish Sentiment = "Bullish"
	SentimentBearish Sentiment = "Bearish"
	SentimentNeutral Sentiment = "Neutral"
)

// Bound is the uncertainty interval around one forecasted price.
type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Analysis is the final record produced by one pipeline run.
// The field set is stable; logging and rendering collaborators consume it.
type Analysis struct {
	Symbol           string       `json:"symbol"`
	DateRange        [2]string    `json:"date_range"`
	LatestPrice      float64      `json:"latest_price"`
	Indicators       IndicatorSet `json:"technical_indicators"`
	Trend            Trend        `json:"trend"`
	HorizonDays      int          `json:"forecast_horizon_days"`
	ForecastNextDays []float64    `json:"forecast_next_days"`
	ForecastBounds   []Bound      `json:"forecast_bounds"`
	Signal           Signal       `json:"signal"`
	Reason           string       `json:"reason"`
	AdviceText       string       `json:"advice_text"`
	Confidence       float64      `json:"confidence"`
	Sentiment        Sentiment    `json:"sentiment"`
	ModelUsed        string       `json:"model_used"`
	Warning          string       `json:"warning,omitempty"`
	GeneratedAt      time.Time    `json:"generated_at"`
}
