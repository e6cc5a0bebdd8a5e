package report

import (
	"fmt"
	"strings"

	"StockInsight/internal/model"
)

// FormatAnalysis renders one analysis record as a plain-text report.
func FormatAnalysis(res *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== %s | %s .. %s ===\n",
		res.Symbol, res.DateRange[0], res.DateRange[1]))
	b.WriteString(fmt.Sprintf("Latest price: %.2f\n", res.LatestPrice))

	b.WriteString(fmt.Sprintf("SMA short: %.2f | SMA long: %.2f | RSI: %s\n",
		res.Indicators.SMAShort, res.Indicators.SMALong, formatRSI(res.Indicators)))
	if res.Warning != "" {
		b.WriteString(fmt.Sprintf("Warning: %s\n", res.Warning))
	}

	b.WriteString(fmt.Sprintf("\nTrend: %s (%s model)\n", res.Trend, res.ModelUsed))
	b.WriteString(fmt.Sprintf("Forecast, next %d day(s):\n", res.HorizonDays))
	for i, p := range res.ForecastNextDays {
		line := fmt.Sprintf("  day %d: %.2f", i+1, p)
		if i < len(res.ForecastBounds) {
			line += fmt.Sprintf("  [%.2f .. %.2f]", res.ForecastBounds[i].Min, res.ForecastBounds[i].Max)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\nSignal: %s - %s\n", res.Signal, res.Reason))
	b.WriteString(fmt.Sprintf("Sentiment: %s | Confidence: %.0f%%\n", res.Sentiment, res.Confidence*100))
	b.WriteString(fmt.Sprintf("Advice: %s\n", res.AdviceText))

	return b.String()
}

func formatRSI(ind model.IndicatorSet) string {
	if ind.RSI == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *ind.RSI)
}
