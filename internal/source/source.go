package source

import (
	"strings"
	"time"

	"StockInsight/internal/model"
)

// Source fetches a validated PriceSeries for a symbol and date range.
// Backends are swappable: CSV files on disk or a remote quote API.
type Source interface {
	Fetch(symbol string, start, end time.Time) (*model.PriceSeries, error)
	Name() string
}

// NormalizeSymbol uppercases the symbol and strips surrounding whitespace.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Bars []model.OHLCV
	Err  error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Fetch(symbol string, _, _ time.Time) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	series := &model.PriceSeries{Symbol: NormalizeSymbol(symbol), Bars: m.Bars}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// GenerateBars builds count synthetic daily bars drifting around basePrice,
// ending yesterday. Intended for mocks and tests.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Date:   time.Now().AddDate(0, 0, -(count - i)).Truncate(24 * time.Hour),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
