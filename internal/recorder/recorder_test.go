package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"StockInsight/internal/model"
)

func sampleAnalysis() *model.Analysis {
	rsi := 55.5
	return &model.Analysis{
		Symbol:           "FPT",
		DateRange:        [2]string{"2024-01-01", "2024-02-29"},
		LatestPrice:      103.2,
		Indicators:       model.IndicatorSet{SMAShort: 102.1, SMALong: 100.4, RSI: &rsi},
		Trend:            model.TrendUp,
		HorizonDays:      5,
		ForecastNextDays: []float64{104, 105, 106, 107, 108},
		ForecastBounds: []model.Bound{
			{Min: 102, Max: 106}, {Min: 103, Max: 107}, {Min: 104, Max: 108},
			{Min: 105, Max: 109}, {Min: 106, Max: 110},
		},
		Signal:      model.SignalBuy,
		Reason:      "uptrend with RSI below overbought and short SMA above long SMA",
		AdviceText:  "FPT shows short-term upside potential.",
		Confidence:  0.9,
		Sentiment:   model.SentimentBullish,
		ModelUsed:   "linear",
		GeneratedAt: time.Now(),
	}
}

func TestSQLiteRecorder_RecordAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insight.db")

	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	if err := rec.Record(sampleAnalysis()); err != nil {
		t.Fatalf("record: %v", err)
	}

	// RSI may be undefined; the row must still insert with a NULL.
	res := sampleAnalysis()
	res.Indicators.RSI = nil
	res.Warning = "history has 3 days, RSI(14) needs 15; RSI omitted"
	if err := rec.Record(res); err != nil {
		t.Fatalf("record without RSI: %v", err)
	}

	var count int
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM analyses").Scan(&count); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}

	var rsi *float64
	if err := rec.db.QueryRow("SELECT rsi FROM analyses ORDER BY id DESC LIMIT 1").Scan(&rsi); err != nil {
		t.Fatalf("read rsi: %v", err)
	}
	if rsi != nil {
		t.Errorf("expected NULL rsi, got %v", *rsi)
	}
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoopRecorder()
	if err := rec.Record(sampleAnalysis()); err != nil {
		t.Errorf("noop record: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("noop close: %v", err)
	}
}
