package analyzer

import (
	"math"
	"testing"

	"NSESentinel/internal/model"
)

var testParams = Params{
	RSIPeriod:     14,
	RSIOversold:   20,
	RSIOverbought: 80,
	MACDFast:      12,
	MACDSlow:      26,
	MACDSignal:    9,
}

func indicatorsWith(macd, signal, prevHist float64) *model.IndicatorSeries {
	return &model.IndicatorSeries{
		MACD:       []float64{0, macd},
		MACDSignal: []float64{0, signal},
		MACDHist:   []float64{prevHist, macd - signal},
	}
}

func TestClassify_RSIOversold(t *testing.T) {
	a := &model.StockAnalysis{RSI: 15.5}
	signals := Classify(a, testParams)
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	if signals[0].Type != model.SignalRSIOversold {
		t.Errorf("expected oversold signal, got %s", signals[0].Type)
	}
	if signals[0].Description != "RSI Oversold (15.50) - Potential Buy" {
		t.Errorf("unexpected description: %s", signals[0].Description)
	}
}

func TestClassify_RSIOverbought(t *testing.T) {
	a := &model.StockAnalysis{RSI: 87.2}
	signals := Classify(a, testParams)
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	if signals[0].Type != model.SignalRSIOverbought {
		t.Errorf("expected overbought signal, got %s", signals[0].Type)
	}
	if signals[0].Description != "RSI Overbought (87.20) - Potential Sell" {
		t.Errorf("unexpected description: %s", signals[0].Description)
	}
}

func TestClassify_RSINeutral(t *testing.T) {
	a := &model.StockAnalysis{RSI: 50}
	if signals := Classify(a, testParams); len(signals) != 0 {
		t.Errorf("expected no signals for neutral RSI, got %d", len(signals))
	}
}

func TestClassify_RSINaN(t *testing.T) {
	a := &model.StockAnalysis{RSI: math.NaN()}
	if signals := Classify(a, testParams); len(signals) != 0 {
		t.Errorf("expected no signals for NaN RSI, got %d", len(signals))
	}
}

func TestClassify_MACDBullishCrossover(t *testing.T) {
	a := &model.StockAnalysis{
		RSI:        50,
		Indicators: indicatorsWith(1.0, 0.5, -0.2),
	}
	signals := Classify(a, testParams)
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	if signals[0].Type != model.SignalMACDBullish {
		t.Errorf("expected bullish crossover, got %s", signals[0].Type)
	}
	if signals[0].Description != "MACD Bullish Crossover - Buy Signal" {
		t.Errorf("unexpected description: %s", signals[0].Description)
	}
}

func TestClassify_MACDBearishCrossover(t *testing.T) {
	a := &model.StockAnalysis{
		RSI:        50,
		Indicators: indicatorsWith(0.5, 1.0, 0.2),
	}
	signals := Classify(a, testParams)
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	if signals[0].Type != model.SignalMACDBearish {
		t.Errorf("expected bearish crossover, got %s", signals[0].Type)
	}
}

func TestClassify_MACDNoCrossover(t *testing.T) {
	// Line above signal but histogram was already positive: no fresh cross.
	a := &model.StockAnalysis{
		RSI:        50,
		Indicators: indicatorsWith(1.0, 0.5, 0.3),
	}
	if signals := Classify(a, testParams); len(signals) != 0 {
		t.Errorf("expected no signals without a fresh crossover, got %d", len(signals))
	}
}

func TestClassify_MACDNaNGuard(t *testing.T) {
	a := &model.StockAnalysis{
		RSI:        50,
		Indicators: indicatorsWith(1.0, 0.5, math.NaN()),
	}
	if signals := Classify(a, testParams); len(signals) != 0 {
		t.Errorf("expected no signals with NaN previous histogram, got %d", len(signals))
	}
}

func TestClassify_CombinedSignals(t *testing.T) {
	a := &model.StockAnalysis{
		RSI:        12,
		Indicators: indicatorsWith(1.0, 0.5, -0.2),
	}
	signals := Classify(a, testParams)
	if len(signals) != 2 {
		t.Fatalf("expected 2 signals (RSI + MACD), got %d", len(signals))
	}
	if !signals[1].Type.Bullish() {
		t.Error("expected MACD crossover to be bullish")
	}
}
