package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"NSESentinel/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
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
		`CREATE TABLE IF NOT EXISTS runs (
			id            TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			duration_ms   INTEGER,
			provenance    TEXT,
			universe_size INTEGER,
			screened      INTEGER,
			analyzed      INTEGER,
			failed        INTEGER,
			signal_count  INTEGER,
			email_sent    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT NOT NULL,
			company       TEXT,
			price         REAL,
			rsi           REAL,
			macd          REAL,
			macd_signal   REAL,
			macd_hist     REAL,
			market_cap_cr REAL,
			turnover_cr   REAL,
			signal_type   TEXT,
			description   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_run ON signals(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(summary *RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(id, timestamp, duration_ms, provenance, universe_size, screened, analyzed, failed, signal_count, email_sent)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		summary.RunID, summary.StartedAt.Unix(), summary.Duration.Milliseconds(),
		string(summary.Provenance), summary.UniverseSize, summary.Screened,
		summary.Analyzed, summary.Failed, summary.SignalCount,
		boolToInt(summary.EmailSent),
	)
	return err
}

func (r *SQLiteRecorder) RecordSignals(runID string, companies []model.StockAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, c := range companies {
		for _, s := range c.Signals {
			_, err := r.db.Exec(`INSERT INTO signals
				(run_id, timestamp, symbol, company, price, rsi, macd, macd_signal, macd_hist,
				 market_cap_cr, turnover_cr, signal_type, description)
				VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
				runID, now, c.Symbol, c.CompanyName, c.CurrentPrice,
				c.RSI, c.MACD, c.MACDSignal, c.MACDHist,
				c.MarketCapCr, c.DailyTurnoverCr,
				string(s.Type), s.Description,
			)
			if err != nil {
				return fmt.Errorf("insert signal for %s: %w", c.Symbol, err)
			}
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
