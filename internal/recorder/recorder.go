package recorder

import (
	"time"

	"NSESentinel/internal/model"
)

// RunSummary holds the aggregate outcome of one pipeline run.
type RunSummary struct {
	RunID        string
	StartedAt    time.Time
	Duration     time.Duration
	Provenance   model.Provenance
	UniverseSize int
	Screened     int
	Analyzed     int
	Failed       int
	SignalCount  int
	EmailSent    bool
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(summary *RunSummary) error
	RecordSignals(runID string, companies []model.StockAnalysis) error
	Close() error
}
