package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"StockInsight/internal/analyzer"
	"StockInsight/internal/recorder"
	"StockInsight/internal/report"
	"StockInsight/internal/source"
)

// Scheduler runs the analysis pipeline for a set of symbols, either once or
// on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Source   source.Source
	Analyzer *analyzer.Analyzer
	Recorder recorder.Recorder

	Symbols      []string
	LookbackDays int
	Horizon      int
	Model        string
}

// New creates a Scheduler around the given collaborators.
func New(src source.Source, an *analyzer.Analyzer, rec recorder.Recorder,
	symbols []string, lookbackDays, horizon int, modelFlag string) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Source:       src,
		Analyzer:     an,
		Recorder:     rec,
		Symbols:      symbols,
		LookbackDays: lookbackDays,
		Horizon:      horizon,
		Model:        modelFlag,
	}
}

// Register schedules the analysis run under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RunAll); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAll analyzes every configured symbol once, prints the report and
// records the result. A failure for one symbol does not stop the others.
func (s *Scheduler) RunAll() {
	end := time.Now().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -s.LookbackDays)

	for _, symbol := range s.Symbols {
		series, err := s.Source.Fetch(symbol, start, end)
		if err != nil {
			log.Printf("[ERROR] fetch %s: %v", symbol, err)
			continue
		}

		res, err := s.Analyzer.Analyze(series, s.Horizon, s.Model)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", symbol, err)
			continue
		}

		fmt.Print(report.FormatAnalysis(res))

		if err := s.Recorder.Record(res); err != nil {
			log.Printf("[ERROR] record %s: %v", symbol, err)
		}
	}
}
