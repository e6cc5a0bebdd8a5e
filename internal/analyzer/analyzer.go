package analyzer

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"StockInsight/internal/advisor"
	"StockInsight/internal/calculator"
	"StockInsight/internal/forecast"
	"StockInsight/internal/model"
	"StockInsight/internal/strategy"
)

// Options configures one Analyzer. Zero values fall back to the defaults
// below.
type Options struct {
	ShortWindow       int     // SMA short window, default 7
	LongWindow        int     // SMA long window, default 30
	RSIPeriod         int     // RSI period, default 14
	SidewaysThreshold float64 // relative change treated as sideways, default 0.02
}

func (o Options) withDefaults() Options {
	if o.ShortWindow <= 0 {
		o.ShortWindow = 7
	}
	if o.LongWindow <= 0 {
		o.LongWindow = 30
	}
	if o.RSIPeriod <= 0 {
		o.RSIPeriod = 14
	}
	if o.SidewaysThreshold <= 0 {
		o.SidewaysThreshold = strategy.DefaultSidewaysThreshold
	}
	return o
}

// Analyzer runs the full pipeline: indicators, forecast, trend/signal,
// advice. Each call allocates fresh data and reads the series only, so
// concurrent calls on independent series are safe.
type Analyzer struct {
	opts Options
	adv  *advisor.Advisor
}

// New creates an Analyzer. rng seeds the advice template selection; pass a
// seeded source in tests to make the wording deterministic.
func New(opts Options, rng *rand.Rand) *Analyzer {
	return &Analyzer{opts: opts.withDefaults(), adv: advisor.New(rng)}
}

// Analyze produces a best-effort analysis record for the series. It returns
// an error only for invalid input (model.ErrInvalidInput); short or awkward
// data degrades to fallback paths instead of failing.
func (a *Analyzer) Analyze(series *model.PriceSeries, horizon int, modelFlag string) (*model.Analysis, error) {
	if series == nil {
		return nil, fmt.Errorf("%w: nil price series", model.ErrInvalidInput)
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if horizon < forecast.MinHorizon || horizon > forecast.MaxHorizon {
		return nil, fmt.Errorf("%w: horizon %d outside [%d,%d]",
			model.ErrInvalidInput, horizon, forecast.MinHorizon, forecast.MaxHorizon)
	}
	if modelFlag != forecast.ModelLinear && modelFlag != forecast.ModelFallback {
		modelFlag = forecast.ModelLinear
	}

	closes := series.Closes()
	lastClose := series.LastClose()

	smaShort, err := calculator.SMASeries(closes, a.opts.ShortWindow)
	if err != nil {
		return nil, err
	}
	smaLong, err := calculator.SMASeries(closes, a.opts.LongWindow)
	if err != nil {
		return nil, err
	}

	indicators := model.IndicatorSet{
		SMAShort: smaShort[len(smaShort)-1],
		SMALong:  smaLong[len(smaLong)-1],
	}

	warning := ""
	rsiSeries, err := calculator.RSISeries(closes, a.opts.RSIPeriod)
	if err != nil {
		if !errors.Is(err, calculator.ErrInsufficientData) {
			return nil, err
		}
		warning = fmt.Sprintf("history has %d days, RSI(%d) needs %d; RSI omitted",
			len(closes), a.opts.RSIPeriod, a.opts.RSIPeriod+1)
	} else {
		latest := rsiSeries[len(rsiSeries)-1]
		indicators.RSI = &latest
	}

	fc := forecast.Project(forecast.Inputs{
		Closes:   closes,
		SMAShort: smaShort,
		SMALong:  smaLong,
		RSI:      rsiSeries,
	}, horizon, modelFlag)

	trend := strategy.ClassifyTrend(lastClose, fc.Predictions[len(fc.Predictions)-1], a.opts.SidewaysThreshold)
	signal, reason := strategy.DeriveSignal(trend, indicators.RSIOr(50), indicators.SMAShort, indicators.SMALong)
	if fc.Note != "" {
		reason = fmt.Sprintf("%s (%s)", reason, fc.Note)
	}

	start, end := series.DateRange()
	result := &model.Analysis{
		Symbol:           series.Symbol,
		DateRange:        [2]string{start.Format("2006-01-02"), end.Format("2006-01-02")},
		LatestPrice:      lastClose,
		Indicators:       indicators,
		Trend:            trend,
		HorizonDays:      horizon,
		ForecastNextDays: fc.Predictions,
		ForecastBounds:   fc.Bounds,
		Signal:           signal,
		Reason:           reason,
		ModelUsed:        fc.ModelUsed,
		Warning:          warning,
		GeneratedAt:      time.Now(),
	}

	advice := a.adv.Advise(result)
	result.AdviceText = advice.Text
	result.Confidence = advice.Confidence
	result.Sentiment = advice.Sentiment

	return result, nil
}
