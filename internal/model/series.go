package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks input validation failures (empty series, bad OHLC
// ordering, horizon out of range). Callers check it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the ordered daily price history for one symbol.
// The analysis pipeline only reads it; callers own the data.
type PriceSeries struct {
	Symbol string
	Bars   []OHLCV
}

// Validate checks the series invariants: non-empty, strictly increasing
// dates, positive prices, non-negative volume, and Low <= Open,Close <= High
// for every bar.
func (s *PriceSeries) Validate() error {
	if len(s.Bars) == 0 {
		return fmt.Errorf("%w: empty price series for %q", ErrInvalidInput, s.Symbol)
	}
	for i, b := range s.Bars {
		if i > 0 && !s.Bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("%w: bars not strictly increasing by date at index %d (%s)",
				ErrInvalidInput, i, b.Date.Format("2006-01-02"))
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("%w: non-positive price at index %d", ErrInvalidInput, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: negative volume at index %d", ErrInvalidInput, i)
		}
		if b.Low > b.Open || b.Low > b.Close || b.High < b.Open || b.High < b.Close {
			return fmt.Errorf("%w: OHLC ordering violated at index %d (low %.2f high %.2f open %.2f close %.2f)",
				ErrInvalidInput, i, b.Low, b.High, b.Open, b.Close)
		}
	}
	return nil
}

// Closes returns the close prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// LastClose returns the most recent close price.
func (s *PriceSeries) LastClose() float64 {
	return s.Bars[len(s.Bars)-1].Close
}

// DateRange returns the first and last bar dates.
func (s *PriceSeries) DateRange() (start, end time.Time) {
	return s.Bars[0].Date, s.Bars[len(s.Bars)-1].Date
}
