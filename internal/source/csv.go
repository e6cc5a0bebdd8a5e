package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockInsight/internal/model"
)

// CSVSource reads daily bars from <Dir>/<SYMBOL>.csv. Headers from
// different exporters are normalized (case-insensitive, Date/Timestamp and
// Adj Close aliases), so inconsistently-shaped files load the same way.
type CSVSource struct {
	Dir string
}

// NewCSVSource creates a CSV-backed source rooted at dir.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (c *CSVSource) Name() string { return "csv" }

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

// headerAliases maps normalized column names to the canonical field.
var headerAliases = map[string]string{
	"date":      "date",
	"timestamp": "date",
	"time":      "date",
	"open":      "open",
	"high":      "high",
	"low":       "low",
	"close":     "close",
	"adjclose":  "adjclose",
	"volume":    "volume",
	"vol":       "volume",
}

// Fetch loads the symbol's CSV file, filters bars to [start, end]
// (zero times disable the corresponding bound), sorts ascending and
// validates the result.
func (c *CSVSource) Fetch(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	symbol = NormalizeSymbol(symbol)
	path := filepath.Join(c.Dir, symbol+".csv")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no data for %s: %w", symbol, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s has no data rows", model.ErrInvalidInput, path)
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	bars := make([]model.OHLCV, 0, len(rows)-1)
	for i, row := range rows[1:] {
		bar, err := parseBar(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if !start.IsZero() && bar.Date.Before(start) {
			continue
		}
		if !end.IsZero() && bar.Date.After(end) {
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no bars for %s between %s and %s",
			model.ErrInvalidInput, symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	series := &model.PriceSeries{Symbol: symbol, Bars: bars}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

// mapColumns resolves header names to column indexes. A plain "close"
// column wins over "adj close" when both exist.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(h)))
		canonical, ok := headerAliases[key]
		if !ok {
			continue
		}
		if _, taken := cols[canonical]; !taken {
			cols[canonical] = i
		}
	}
	if idx, ok := cols["adjclose"]; ok {
		if _, hasClose := cols["close"]; !hasClose {
			cols["close"] = idx
		}
		delete(cols, "adjclose")
	}
	for _, required := range []string{"date", "open", "high", "low", "close"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", model.ErrInvalidInput, required)
		}
	}
	return cols, nil
}

func parseBar(row []string, cols map[string]int) (model.OHLCV, error) {
	var bar model.OHLCV

	date, err := parseDate(field(row, cols["date"]))
	if err != nil {
		return bar, err
	}
	bar.Date = date

	if bar.Open, err = parseFloat(field(row, cols["open"]), "open"); err != nil {
		return bar, err
	}
	if bar.High, err = parseFloat(field(row, cols["high"]), "high"); err != nil {
		return bar, err
	}
	if bar.Low, err = parseFloat(field(row, cols["low"]), "low"); err != nil {
		return bar, err
	}
	if bar.Close, err = parseFloat(field(row, cols["close"]), "close"); err != nil {
		return bar, err
	}
	if idx, ok := cols["volume"]; ok {
		if bar.Volume, err = parseFloat(field(row, idx), "volume"); err != nil {
			return bar, err
		}
	}
	return bar, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", model.ErrInvalidInput, s)
}

func parseFloat(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s value %q", model.ErrInvalidInput, name, s)
	}
	return v, nil
}
