package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"StockInsight/internal/model"
)

// SQLiteRecorder persists analysis results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers do not block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			range_start    TEXT,
			range_end      TEXT,
			latest_price   REAL,
			sma_short      REAL,
			sma_long       REAL,
			rsi            REAL,
			trend          TEXT,
			signal         TEXT,
			reason         TEXT,
			horizon_days   INTEGER,
			forecast_json  TEXT,
			bounds_json    TEXT,
			advice         TEXT,
			confidence     REAL,
			sentiment      TEXT,
			model_used     TEXT,
			warning        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Record inserts one analysis row. The forecast arrays are stored as JSON
// text; RSI is stored as NULL when undefined.
func (r *SQLiteRecorder) Record(res *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	forecastJSON, err := json.Marshal(res.ForecastNextDays)
	if err != nil {
		return fmt.Errorf("marshal forecast: %w", err)
	}
	boundsJSON, err := json.Marshal(res.ForecastBounds)
	if err != nil {
		return fmt.Errorf("marshal bounds: %w", err)
	}

	var rsi sql.NullFloat64
	if res.Indicators.RSI != nil {
		rsi = sql.NullFloat64{Float64: *res.Indicators.RSI, Valid: true}
	}

	_, err = r.db.Exec(`INSERT INTO analyses
		(timestamp, symbol, range_start, range_end, latest_price,
		 sma_short, sma_long, rsi, trend, signal, reason, horizon_days,
		 forecast_json, bounds_json, advice, confidence, sentiment,
		 model_used, warning)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.GeneratedAt.Unix(), res.Symbol, res.DateRange[0], res.DateRange[1],
		res.LatestPrice, res.Indicators.SMAShort, res.Indicators.SMALong, rsi,
		string(res.Trend), string(res.Signal), res.Reason, res.HorizonDays,
		string(forecastJSON), string(boundsJSON), res.AdviceText,
		res.Confidence, string(res.Sentiment), res.ModelUsed, res.Warning,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
