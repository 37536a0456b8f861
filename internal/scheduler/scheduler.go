// Package scheduler drives the daily analysis pipeline, either on a cron
// schedule or as a one-shot run.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"NSESentinel/internal/analyzer"
	"NSESentinel/internal/chart"
	"NSESentinel/internal/notifier"
	"NSESentinel/internal/recorder"
	"NSESentinel/internal/report"
	"NSESentinel/internal/screener"
	"NSESentinel/internal/universe"
)

// Scheduler manages the cron task and the pipeline it runs.
type Scheduler struct {
	Cron     *cron.Cron
	Universe *universe.Loader
	Screener *screener.Screener
	Analyzer *analyzer.Analyzer
	Charts   *chart.Renderer
	Mailer   *notifier.Mailer
	Recorder recorder.Recorder
	Params   report.Params
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, uni *universe.Loader, scr *screener.Screener,
	ana *analyzer.Analyzer, charts *chart.Renderer, mail *notifier.Mailer,
	rec recorder.Recorder, params report.Params) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Universe: uni,
		Screener: scr,
		Analyzer: ana,
		Charts:   charts,
		Mailer:   mail,
		Recorder: rec,
		Params:   params,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily analysis task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
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

// RunNow executes the full pipeline immediately.
func (s *Scheduler) RunNow() error {
	return s.runReport()
}

func (s *Scheduler) dailyTask() {
	if err := s.runReport(); err != nil {
		log.Printf("[ERROR] daily analysis run: %v", err)
	}
}

// runReport executes one end-to-end run: load universe, screen, analyze,
// build the report, email it, and record the outcome.
func (s *Scheduler) runReport() error {
	runID := uuid.NewString()
	started := time.Now()
	log.Printf("[INFO] starting analysis run %s", runID)

	symbols, prov, err := s.Universe.Load()
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}
	log.Printf("[INFO] universe loaded: %d symbols (%s)", len(symbols), prov.Description())

	screened, err := s.Screener.Screen(s.Ctx, symbols)
	if err != nil {
		return fmt.Errorf("screen universe: %w", err)
	}
	if len(screened) == 0 {
		return fmt.Errorf("no stocks passed fundamental screening")
	}

	result, err := s.Analyzer.Run(s.Ctx, screened)
	if err != nil {
		return fmt.Errorf("analyze stocks: %w", err)
	}

	rep := report.Build(result.WithSignals, prov, result.TotalAnalyzed, s.Params)

	s.renderCharts(rep)

	emailSent := false
	if err := s.sendReport(rep); err != nil {
		log.Printf("[ERROR] send report: %v", err)
	} else {
		emailSent = true
	}

	summary := &recorder.RunSummary{
		RunID:        runID,
		StartedAt:    started,
		Duration:     time.Since(started),
		Provenance:   prov,
		UniverseSize: len(symbols),
		Screened:     len(screened),
		Analyzed:     result.TotalAnalyzed,
		Failed:       len(result.FailedSymbols),
		SignalCount:  len(rep.Companies),
		EmailSent:    emailSent,
	}
	if err := s.Recorder.RecordRun(summary); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	if err := s.Recorder.RecordSignals(runID, rep.Companies); err != nil {
		log.Printf("[ERROR] record signals: %v", err)
	}

	log.Printf("[INFO] run %s complete in %v: %d analyzed, %d with signals, email sent: %t",
		runID, summary.Duration.Round(time.Second), summary.Analyzed, summary.SignalCount, emailSent)

	if !emailSent {
		return fmt.Errorf("report generated but email delivery failed")
	}
	return nil
}

func (s *Scheduler) renderCharts(rep *report.Report) {
	if s.Charts == nil {
		return
	}
	for i := range rep.Companies {
		path, err := s.Charts.Render(&rep.Companies[i])
		if err != nil {
			log.Printf("[WARN] render chart for %s: %v", rep.Companies[i].Symbol, err)
			continue
		}
		log.Printf("[INFO] chart written: %s", path)
	}
}

func (s *Scheduler) sendReport(rep *report.Report) error {
	body, err := report.RenderHTML(rep)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	msg := &notifier.Message{
		Subject:  rep.Subject(),
		HTMLBody: body,
	}
	if len(rep.Companies) > 0 {
		csvData, err := report.BuildCSV(rep)
		if err != nil {
			return fmt.Errorf("build csv: %w", err)
		}
		msg.Attachments = append(msg.Attachments, notifier.Attachment{
			Filename:    rep.CSVFilename(),
			ContentType: "text/csv",
			Data:        csvData,
		})
	}

	return s.Mailer.SendWithRetry(s.Ctx, msg, 3)
}
