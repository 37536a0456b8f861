package analyzer

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"NSESentinel/internal/calculator"
	"NSESentinel/internal/collector"
	"NSESentinel/internal/model"
)

// Params holds the indicator configuration for a run.
type Params struct {
	RSIPeriod     int
	RSIOversold   float64
	RSIOverbought float64
	MACDFast      int
	MACDSlow      int
	MACDSignal    int
}

// Analyzer computes RSI/MACD per symbol over a bounded worker pool.
type Analyzer struct {
	Collector *collector.Collector
	Params    Params
	Workers   int
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(col *collector.Collector, params Params, workers int) *Analyzer {
	if workers <= 0 {
		workers = 1
	}
	return &Analyzer{Collector: col, Params: params, Workers: workers}
}

// Result aggregates the outcome of an analysis batch.
type Result struct {
	WithSignals   []model.StockAnalysis
	TotalAnalyzed int
	FailedSymbols []string
}

// Run fetches and analyzes every screened stock concurrently. Per-symbol
// failures are logged and collected; only context cancellation aborts the batch.
func (a *Analyzer) Run(ctx context.Context, stocks []model.StockInfo) (*Result, error) {
	log.Printf("[INFO] analyzing %d stocks with %d workers", len(stocks), a.Workers)

	var (
		mu        sync.Mutex
		res       Result
		processed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Workers)

	for _, info := range stocks {
		info := info
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			analysis, err := a.analyzeOne(gctx, info)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if processed%10 == 0 || processed == len(stocks) {
				log.Printf("[INFO] analysis progress: %d/%d completed", processed, len(stocks))
			}
			if err != nil {
				log.Printf("[WARN] analyze %s: %v", info.Symbol, err)
				res.FailedSymbols = append(res.FailedSymbols, info.Symbol)
				return nil
			}
			res.TotalAnalyzed++
			if analysis.HasSignals() {
				log.Printf("[INFO] signals for %s: %d", info.Symbol, len(analysis.Signals))
				res.WithSignals = append(res.WithSignals, *analysis)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[INFO] analysis complete: %d successful, %d failed, %d with signals",
		res.TotalAnalyzed, len(res.FailedSymbols), len(res.WithSignals))
	return &res, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, info model.StockInfo) (*model.StockAnalysis, error) {
	series, err := a.Collector.FetchSeries(ctx, info.Symbol)
	if err != nil {
		return nil, err
	}
	return a.Analyze(series, &info)
}

// Analyze computes indicators and signals for one validated price series.
// info may be nil when quote data is unavailable.
func (a *Analyzer) Analyze(series *model.PriceSeries, info *model.StockInfo) (*model.StockAnalysis, error) {
	closes := series.Closes()
	p := a.Params

	rsi, err := calculator.RSISeries(closes, p.RSIPeriod)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	macd, err := calculator.CalculateMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}

	latestPrice := closes[len(closes)-1]
	if latestPrice <= 0 || math.IsNaN(latestPrice) {
		return nil, fmt.Errorf("invalid latest price %f", latestPrice)
	}

	analysis := &model.StockAnalysis{
		Symbol:       series.Symbol,
		CompanyName:  companyName(series.Symbol, info),
		CurrentPrice: latestPrice,
		RSI:          last(rsi),
		MACD:         last(macd.Line),
		MACDSignal:   last(macd.Signal),
		MACDHist:     last(macd.Histogram),
		DataPoints:   len(closes),
		Series:       series,
		Indicators: &model.IndicatorSeries{
			RSI:        rsi,
			MACD:       macd.Line,
			MACDSignal: macd.Signal,
			MACDHist:   macd.Histogram,
		},
	}
	if info != nil {
		analysis.MarketCapCr = info.MarketCapCrores()
		analysis.DailyTurnoverCr = info.DailyTurnoverCrores()
	}

	analysis.Signals = Classify(analysis, p)
	return analysis, nil
}

func companyName(symbol string, info *model.StockInfo) string {
	if info != nil && info.CompanyName != "" {
		return info.CompanyName
	}
	if n := len(symbol); n > 3 && symbol[n-3:] == ".NS" {
		return symbol[:n-3]
	}
	return symbol
}

func last(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}
