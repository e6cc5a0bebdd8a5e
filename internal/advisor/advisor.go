package advisor

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"StockInsight/internal/model"
)

// Advice is the presentational layer of one analysis: a templated
// natural-language string, a heuristic confidence score in [0,1], and a
// coarse market-mood label. Not statistically calibrated.
type Advice struct {
	Text       string
	Confidence float64
	Sentiment  model.Sentiment
}

// Advisor turns an analysis record into advice. The randomness source only
// varies the phrasing; tests inject a seeded one to pin the template choice.
type Advisor struct {
	rng *rand.Rand
}

// New returns an Advisor drawing templates from rng. A nil rng seeds one
// from the clock, making the wording non-deterministic across runs.
func New(rng *rand.Rand) *Advisor {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Advisor{rng: rng}
}

var buyTemplates = []string{
	"%s shows short-term upside potential.",
	"Technical analysis puts %s in a constructive setup.",
	"A buy signal has formed for %s with supporting indicators.",
}

var sellTemplates = []string{
	"Caution is advised on %s in the short term.",
	"The analysis suggests %s may correct lower.",
	"A sell signal has formed for %s; consider taking profits.",
}

var holdTemplates = []string{
	"Holding the current position in %s is recommended.",
	"%s appears to be in a wait-and-see phase.",
	"Signals for %s are not yet conclusive; keep watching.",
}

var riskWarnings = []string{
	"Note: investing carries risk, size positions accordingly.",
	"Reminder: only commit capital you can afford to lose.",
	"Warning: markets are volatile, monitor the position closely.",
}

// Advise builds the advice for an assembled analysis record. Confidence and
// sentiment are deterministic functions of the record; only the template
// wording varies.
func (a *Advisor) Advise(res *model.Analysis) Advice {
	text := a.adviceText(res)
	return Advice{
		Text:       text + " " + a.riskWarning(res.Signal, res.Trend),
		Confidence: ConfidenceScore(res),
		Sentiment:  ClassifySentiment(res),
	}
}

func (a *Advisor) adviceText(res *model.Analysis) string {
	symbol := res.Symbol
	rsi := res.Indicators.RSIOr(50)
	smaShort := res.Indicators.SMAShort
	smaLong := res.Indicators.SMALong

	switch res.Signal {
	case model.SignalBuy:
		base := fmt.Sprintf(a.pick(buyTemplates), symbol)
		var details []string
		if res.Trend == model.TrendUp {
			details = append(details, "clear uptrend")
		}
		if rsi < 50 {
			details = append(details, "RSI not yet overbought")
		} else if rsi < 70 {
			details = append(details, "RSI in a safe range")
		}
		if smaShort > smaLong {
			details = append(details, "short SMA above long SMA")
		}
		if len(details) > 0 {
			return fmt.Sprintf("%s Supporting factors: %s.", base, strings.Join(details, ", "))
		}
		return base

	case model.SignalSell:
		base := fmt.Sprintf(a.pick(sellTemplates), symbol)
		var details []string
		if res.Trend == model.TrendDown {
			details = append(details, "downtrend in place")
		}
		if rsi > 70 {
			details = append(details, "overbought RSI")
		} else if rsi > 50 {
			details = append(details, "elevated RSI")
		}
		if smaShort < smaLong {
			details = append(details, "short SMA below long SMA")
		}
		if len(details) > 0 {
			return fmt.Sprintf("%s Reasons: %s.", base, strings.Join(details, ", "))
		}
		return base

	default:
		base := fmt.Sprintf(a.pick(holdTemplates), symbol)
		switch {
		case res.Trend == model.TrendSideways:
			return base + " The market is moving sideways, wait for a breakout."
		case rsi > 70:
			return base + " RSI is overbought, wait for a pullback."
		case rsi < 30:
			return base + " RSI is oversold, a recovery is possible."
		default:
			return base + " Indicators have not produced a clear signal yet."
		}
	}
}

func (a *Advisor) riskWarning(signal model.Signal, trend model.Trend) string {
	base := a.pick(riskWarnings)
	switch {
	case signal == model.SignalBuy && trend == model.TrendUp:
		return base + " Set a stop-loss to protect capital."
	case signal == model.SignalSell:
		return base + " A reversal could make this exit early."
	default:
		return base + " Be patient until a clearer signal appears."
	}
}

func (a *Advisor) pick(templates []string) string {
	return templates[a.rng.Intn(len(templates))]
}

// ConfidenceScore starts at 0.5 and adds fixed increments for each
// indicator that agrees with the derived signal, clamped to [0,1].
func ConfidenceScore(res *model.Analysis) float64 {
	score := 0.5
	rsi := res.Indicators.RSIOr(50)
	smaShort := res.Indicators.SMAShort
	smaLong := res.Indicators.SMALong

	if rsi >= 30 && rsi <= 70 {
		score += 0.1
	}
	if (smaShort > smaLong && res.Trend == model.TrendUp) ||
		(smaShort < smaLong && res.Trend == model.TrendDown) {
		score += 0.2
	}
	if res.Signal != model.SignalHold {
		score += 0.1
	}
	if res.Trend != model.TrendSideways {
		score += 0.1
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ClassifySentiment tallies bullish against bearish points from the signal,
// trend and RSI threshold crossings and returns the majority label. Ties
// are Neutral.
func ClassifySentiment(res *model.Analysis) model.Sentiment {
	rsi := res.Indicators.RSIOr(50)

	bullish, bearish := 0, 0

	switch res.Signal {
	case model.SignalBuy:
		bullish += 2
	case model.SignalSell:
		bearish += 2
	case model.SignalHold:
		if res.Trend == model.TrendUp {
			bullish++
		}
		if res.Trend == model.TrendDown {
			bearish++
		}
	}

	if res.Trend == model.TrendUp {
		bullish++
	}
	if res.Trend == model.TrendDown {
		bearish++
	}

	if rsi < 70 {
		bullish++
	}
	if rsi > 70 {
		bearish++
	}

	switch {
	case bullish > bearish:
		return model.SentimentBullish
	case bearish > bullish:
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}
