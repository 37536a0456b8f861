package screener

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"NSESentinel/internal/collector"
	"NSESentinel/internal/model"
)

// Screener filters the symbol universe by market cap and daily turnover
// using a bounded pool of concurrent quote lookups.
type Screener struct {
	Collector          *collector.Collector
	MinMarketCapCr     float64
	MinDailyTurnoverCr float64
	Workers            int
}

// NewScreener creates a new Screener.
func NewScreener(col *collector.Collector, minMarketCapCr, minDailyTurnoverCr float64, workers int) *Screener {
	if workers <= 0 {
		workers = 1
	}
	return &Screener{
		Collector:          col,
		MinMarketCapCr:     minMarketCapCr,
		MinDailyTurnoverCr: minDailyTurnoverCr,
		Workers:            workers,
	}
}

// Screen looks up quote data for every symbol and returns the stocks that
// pass both thresholds. Per-symbol lookup failures are logged and skipped;
// only context cancellation aborts the batch.
func (s *Screener) Screen(ctx context.Context, symbols []string) ([]model.StockInfo, error) {
	log.Printf("[INFO] screening %d symbols (market cap >= %.0f Cr, turnover >= %.1f Cr)",
		len(symbols), s.MinMarketCapCr, s.MinDailyTurnoverCr)

	var (
		mu        sync.Mutex
		passed    []model.StockInfo
		processed int
		failed    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			info, err := s.Collector.FetchInfo(gctx, symbol)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if processed%20 == 0 || processed == len(symbols) {
				log.Printf("[INFO] screening progress: %d/%d checked, %d passed", processed, len(symbols), len(passed))
			}
			if err != nil {
				log.Printf("[WARN] screen %s: quote lookup failed: %v", symbol, err)
				failed++
				return nil
			}
			if s.passes(info) {
				passed = append(passed, *info)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[INFO] screening complete: %d passed, %d failed lookup, %d below thresholds",
		len(passed), failed, len(symbols)-len(passed)-failed)
	return passed, nil
}

func (s *Screener) passes(info *model.StockInfo) bool {
	return info.MarketCapCrores() >= s.MinMarketCapCr &&
		info.DailyTurnoverCrores() >= s.MinDailyTurnoverCr
}
