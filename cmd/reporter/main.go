package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"NSESentinel/internal/analyzer"
	"NSESentinel/internal/chart"
	"NSESentinel/internal/collector"
	"NSESentinel/internal/config"
	"NSESentinel/internal/notifier"
	"NSESentinel/internal/recorder"
	"NSESentinel/internal/report"
	"NSESentinel/internal/scheduler"
	"NSESentinel/internal/screener"
	"NSESentinel/internal/universe"
)

func main() {
	testEmail := flag.Bool("test-email", false, "send a test email and exit")
	cronMode := flag.Bool("cron", false, "run on the configured daily schedule instead of once")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional; real deployments set the variables directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded environment from .env")
	}

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

	setupLogFile(cfg.Report.LogFile)
	log.Println("[INFO] NSESentinel starting...")

	// Init mailer
	mailer := notifier.NewMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort,
		cfg.Mail.Sender, cfg.Mail.Password, cfg.Mail.Recipients)

	if *testEmail {
		log.Println("[INFO] sending test email")
		if err := mailer.SendTest(); err != nil {
			log.Fatalf("[FATAL] test email failed: %v", err)
		}
		log.Println("[INFO] test email sent successfully")
		return
	}

	// Init data pipeline
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher, cfg.Data.HistoryDays, cfg.Data.MinDataPoints,
		cfg.Data.MaxRetries, cfg.RetryDelay(), cfg.RequestDelay())

	uni := universe.NewLoader(cfg.Universe.EquityListURL, cfg.Universe.FallbackFile,
		cfg.Proxy, cfg.Universe.MaxSymbols)

	scr := screener.NewScreener(col, cfg.Filters.MinMarketCapCr,
		cfg.Filters.MinDailyTurnoverCr, cfg.Pools.ScreenerWorkers)

	ana := analyzer.NewAnalyzer(col, analyzer.Params{
		RSIPeriod:     cfg.Indicators.RSIPeriod,
		RSIOversold:   cfg.Indicators.RSIOversold,
		RSIOverbought: cfg.Indicators.RSIOverbought,
		MACDFast:      cfg.Indicators.MACDFast,
		MACDSlow:      cfg.Indicators.MACDSlow,
		MACDSignal:    cfg.Indicators.MACDSignal,
	}, cfg.Pools.AnalysisWorkers)

	var charts *chart.Renderer
	if cfg.Report.ChartDir != "" {
		charts = chart.NewRenderer(cfg.Report.ChartDir,
			cfg.Indicators.RSIOversold, cfg.Indicators.RSIOverbought)
	}

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

	params := report.Params{
		RSIPeriod:          cfg.Indicators.RSIPeriod,
		RSIOversold:        cfg.Indicators.RSIOversold,
		RSIOverbought:      cfg.Indicators.RSIOverbought,
		MACDFast:           cfg.Indicators.MACDFast,
		MACDSlow:           cfg.Indicators.MACDSlow,
		MACDSignal:         cfg.Indicators.MACDSignal,
		MinMarketCapCr:     cfg.Filters.MinMarketCapCr,
		MinDailyTurnoverCr: cfg.Filters.MinDailyTurnoverCr,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, uni, scr, ana, charts, mailer, rec, params)

	if !*cronMode {
		if err := sched.RunNow(); err != nil {
			log.Fatalf("[FATAL] analysis run: %v", err)
		}
		log.Println("[INFO] NSESentinel finished")
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis now")
		go func() {
			if err := sched.RunNow(); err != nil {
				log.Printf("[ERROR] startup run: %v", err)
			}
		}()
	}

	log.Printf("[INFO] NSESentinel is running on schedule %q. Press Ctrl+C to stop.", cfg.Schedule.DailyCron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] NSESentinel stopped")
}

// setupLogFile mirrors log output to the configured file when possible.
func setupLogFile(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("[WARN] open log file %s: %v", path, err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
}
