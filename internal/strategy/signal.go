package strategy

import "StockInsight/internal/model"

// DeriveSignal maps the trend and latest indicator values to a trading
// signal with a short human-readable reason. The rule tables are fixed:
//
//	Uptrend:   BUY when RSI < 70 and SMA(short) >= SMA(long), else HOLD
//	Downtrend: SELL when RSI > 30 and SMA(short) <= SMA(long), else HOLD
//	Sideways:  BUY when RSI < 30, SELL when RSI > 70, else HOLD
//
// Deterministic lookup, no state.
func DeriveSignal(trend model.Trend, rsi, smaShort, smaLong float64) (model.Signal, string) {
	switch trend {
	case model.TrendUp:
		if rsi < 70 && smaShort >= smaLong {
			return model.SignalBuy, "uptrend with RSI below overbought and short SMA above long SMA"
		}
		return model.SignalHold, "uptrend but indicators do not yet agree"
	case model.TrendDown:
		if rsi > 30 && smaShort <= smaLong {
			return model.SignalSell, "downtrend with RSI above oversold and short SMA below long SMA"
		}
		return model.SignalHold, "downtrend but indicators do not yet agree"
	default:
		switch {
		case rsi < 30:
			return model.SignalBuy, "sideways market with oversold RSI"
		case rsi > 70:
			return model.SignalSell, "sideways market with overbought RSI"
		default:
			return model.SignalHold, "sideways market with neutral RSI"
		}
	}
}
