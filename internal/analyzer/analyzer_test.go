package analyzer

import (
	"context"
	"math"
	"testing"
	"time"

	"NSESentinel/internal/collector"
	"NSESentinel/internal/model"
)

func newTestAnalyzer(fetcher collector.Fetcher, workers int) *Analyzer {
	col := collector.NewCollector(fetcher, 120, 50, 1, 0, 0)
	return NewAnalyzer(col, testParams, workers)
}

func risingBars(base float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := base * math.Pow(1.01, float64(i))
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p,
			High:   p,
			Low:    p,
			Close:  p,
			Volume: 100000,
		}
	}
	return bars
}

func TestAnalyze_SustainedUptrend(t *testing.T) {
	a := newTestAnalyzer(&collector.MockFetcher{}, 1)
	series := &model.PriceSeries{Symbol: "TCS.NS", Bars: risingBars(100, 120)}
	info := &model.StockInfo{
		Symbol:        "TCS.NS",
		CompanyName:   "Tata Consultancy Services",
		MarketCap:     1000 * model.Crore,
		DailyTurnover: 50 * model.Crore,
	}

	analysis, err := a.Analyze(series, info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.DataPoints != 120 {
		t.Errorf("expected 120 data points, got %d", analysis.DataPoints)
	}
	if analysis.CompanyName != "Tata Consultancy Services" {
		t.Errorf("unexpected company name: %s", analysis.CompanyName)
	}
	if analysis.MarketCapCr != 1000 {
		t.Errorf("expected market cap 1000 Cr, got %f", analysis.MarketCapCr)
	}
	// A monotonic uptrend drives RSI to 100, which must flag overbought.
	if analysis.RSI != 100 {
		t.Errorf("expected RSI 100 in monotonic uptrend, got %f", analysis.RSI)
	}
	found := false
	for _, s := range analysis.Signals {
		if s.Type == model.SignalRSIOverbought {
			found = true
		}
	}
	if !found {
		t.Error("expected an overbought signal")
	}
}

func TestAnalyze_NeutralRSIOnOscillatingSeries(t *testing.T) {
	a := newTestAnalyzer(&collector.MockFetcher{}, 1)
	bars := make([]model.OHLCV, 120)
	for i := range bars {
		// Small alternation keeps RSI near 50 with no MACD cross direction.
		p := 100 + 0.5*float64(i%2)
		bars[i] = model.OHLCV{Time: time.Now().AddDate(0, 0, -(120 - i)), Close: p}
	}
	series := &model.PriceSeries{Symbol: "ITC.NS", Bars: bars}

	analysis, err := a.Analyze(series, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.RSI < 30 || analysis.RSI > 70 {
		t.Errorf("expected neutral RSI for oscillating series, got %f", analysis.RSI)
	}
	if analysis.CompanyName != "ITC" {
		t.Errorf("expected symbol-derived name ITC, got %s", analysis.CompanyName)
	}
}

func TestAnalyze_InsufficientData(t *testing.T) {
	a := newTestAnalyzer(&collector.MockFetcher{}, 1)
	series := &model.PriceSeries{Symbol: "SBIN.NS", Bars: risingBars(100, 20)}
	if _, err := a.Analyze(series, nil); err == nil {
		t.Error("expected error for short series")
	}
}

func TestRun_CollectsResults(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 500}
	a := newTestAnalyzer(fetcher, 3)

	stocks := []model.StockInfo{
		{Symbol: "RELIANCE.NS", CompanyName: "Reliance Industries"},
		{Symbol: "TCS.NS", CompanyName: "Tata Consultancy Services"},
		{Symbol: "INFY.NS", CompanyName: "Infosys"},
	}

	result, err := a.Run(context.Background(), stocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalAnalyzed != 3 {
		t.Errorf("expected 3 analyzed, got %d", result.TotalAnalyzed)
	}
	if len(result.FailedSymbols) != 0 {
		t.Errorf("expected no failures, got %v", result.FailedSymbols)
	}
}

func TestRun_FailuresAreCollected(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price: 500,
		Bars: map[string][]model.OHLCV{
			// Too few bars: fails series validation.
			"BAD.NS": risingBars(100, 5),
		},
	}
	a := newTestAnalyzer(fetcher, 2)

	stocks := []model.StockInfo{
		{Symbol: "GOOD.NS", CompanyName: "Good Co"},
		{Symbol: "BAD.NS", CompanyName: "Bad Co"},
	}

	result, err := a.Run(context.Background(), stocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalAnalyzed != 1 {
		t.Errorf("expected 1 analyzed, got %d", result.TotalAnalyzed)
	}
	if len(result.FailedSymbols) != 1 || result.FailedSymbols[0] != "BAD.NS" {
		t.Errorf("expected BAD.NS in failed symbols, got %v", result.FailedSymbols)
	}
}
