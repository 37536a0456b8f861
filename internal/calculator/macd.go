package calculator

import (
	"errors"
	"math"
)

// MACDResult holds the three MACD series. Entries before the warm-up
// (slow period + signal period) are NaN.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// CalculateMACD computes the MACD line (fast EMA - slow EMA), its signal line
// and the histogram for the given close prices.
func CalculateMACD(prices []float64, fast, slow, signalPeriod int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 {
		return nil, errors.New("periods must be positive")
	}
	if fast >= slow {
		return nil, errors.New("fast period must be less than slow period")
	}
	warmup := slow + signalPeriod - 1
	if len(prices) < warmup+1 {
		return nil, errors.New("not enough data for MACD calculation")
	}

	fastEMA, err := CalculateEMA(prices, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := CalculateEMA(prices, slow)
	if err != nil {
		return nil, err
	}

	n := len(prices)
	line := make([]float64, n)
	for i := 0; i < n; i++ {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal line is an EMA of the MACD line, seeded after the slow warm-up.
	signalSrc := line[slow-1:]
	signalEMA, err := CalculateEMA(signalSrc, signalPeriod)
	if err != nil {
		return nil, err
	}

	signal := make([]float64, n)
	hist := make([]float64, n)
	for i := 0; i < n; i++ {
		signal[i] = math.NaN()
		hist[i] = math.NaN()
	}
	for i, v := range signalEMA {
		idx := slow - 1 + i
		signal[idx] = v
		hist[idx] = line[idx] - v
	}
	// Mask the MACD line itself before the slow EMA is meaningful.
	for i := 0; i < slow-1; i++ {
		line[i] = math.NaN()
	}

	return &MACDResult{Line: line, Signal: signal, Histogram: hist}, nil
}
