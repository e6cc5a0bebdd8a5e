package model

import (
	"errors"
	"testing"
	"time"
)

func validBars(n int) []OHLCV {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]OHLCV, n)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = OHLCV{
			Date: base.AddDate(0, 0, i),
			Open: p, High: p * 1.02, Low: p * 0.98, Close: p * 1.01,
			Volume: 1000,
		}
	}
	return bars
}

func TestValidate(t *testing.T) {
	s := &PriceSeries{Symbol: "FPT", Bars: validBars(10)}
	if err := s.Validate(); err != nil {
		t.Fatalf("valid series rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(bars []OHLCV)
	}{
		{"duplicate date", func(b []OHLCV) { b[3].Date = b[2].Date }},
		{"out of order", func(b []OHLCV) { b[3].Date = b[1].Date.AddDate(0, 0, -1) }},
		{"zero price", func(b []OHLCV) { b[4].Close = 0 }},
		{"negative volume", func(b []OHLCV) { b[4].Volume = -1 }},
		{"high below close", func(b []OHLCV) { b[4].High = b[4].Close - 1 }},
		{"low above open", func(b []OHLCV) { b[4].Low = b[4].Open + 1 }},
	}
	for _, tt := range tests {
		bars := validBars(10)
		tt.mutate(bars)
		s := &PriceSeries{Symbol: "FPT", Bars: bars}
		if err := s.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tt.name, err)
		}
	}

	empty := &PriceSeries{Symbol: "FPT"}
	if err := empty.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty series: expected ErrInvalidInput, got %v", err)
	}
}

func TestClosesAndDateRange(t *testing.T) {
	s := &PriceSeries{Symbol: "FPT", Bars: validBars(3)}
	closes := s.Closes()
	if len(closes) != 3 || closes[2] != s.LastClose() {
		t.Errorf("unexpected closes: %v", closes)
	}
	start, end := s.DateRange()
	if !start.Before(end) {
		t.Errorf("expected start %v before end %v", start, end)
	}
}
