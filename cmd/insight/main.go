package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockInsight/internal/analyzer"
	"StockInsight/internal/config"
	"StockInsight/internal/recorder"
	"StockInsight/internal/scheduler"
	"StockInsight/internal/source"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockInsight starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init data source
	var src source.Source
	switch cfg.Data.Backend {
	case "yahoo":
		src = source.NewYahooSource(cfg.Proxy)
	default:
		src = source.NewCSVSource(cfg.Data.CSVDir)
	}
	log.Printf("[INFO] data source: %s", src.Name())

	// Init analyzer
	an := analyzer.New(analyzer.Options{
		ShortWindow:       cfg.Analysis.ShortWindow,
		LongWindow:        cfg.Analysis.LongWindow,
		RSIPeriod:         cfg.Analysis.RSIPeriod,
		SidewaysThreshold: cfg.Analysis.SidewaysThreshold,
	}, nil)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sched := scheduler.New(src, an, rec,
		cfg.Data.Symbols, cfg.Data.LookbackDays,
		cfg.Analysis.HorizonDays, cfg.Analysis.Model)

	// No cron spec: single run, then exit.
	if cfg.Schedule.Cron == "" {
		sched.RunAll()
		log.Println("[INFO] StockInsight done")
		return
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis now")
		go sched.RunAll()
	}

	log.Println("[INFO] StockInsight is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
