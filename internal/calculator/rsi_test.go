package calculator

import (
	"math"
	"testing"
)

func TestRSISeries_WarmupIsNaN(t *testing.T) {
	prices := []float64{10, 11, 12, 11, 13, 14, 13, 15, 16, 15}
	period := 4

	rsi, err := RSISeries(prices, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rsi) != len(prices) {
		t.Fatalf("expected %d values, got %d", len(prices), len(rsi))
	}
	for i := 0; i < period; i++ {
		if !math.IsNaN(rsi[i]) {
			t.Errorf("rsi[%d] = %f, expected NaN during warm-up", i, rsi[i])
		}
	}
	for i := period; i < len(rsi); i++ {
		if math.IsNaN(rsi[i]) {
			t.Errorf("rsi[%d] is NaN after warm-up", i)
		}
	}
}

func TestRSISeries_KnownValues(t *testing.T) {
	// period 2, prices 1,2,3,2: gains 1,1 then loss 1.
	// After warm-up: avgGain=1 avgLoss=0 -> 100, then avgGain=0.5 avgLoss=0.5 -> 50.
	rsi, err := RSISeries([]float64{1, 2, 3, 2}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi[2] != 100 {
		t.Errorf("rsi[2] = %f, expected 100", rsi[2])
	}
	if rsi[3] != 50 {
		t.Errorf("rsi[3] = %f, expected 50", rsi[3])
	}
}

func TestCalculateRSI_AllGains(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	rsi, err := CalculateRSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100 {
		t.Errorf("expected RSI 100 for monotonic gains, got %f", rsi)
	}
}

func TestCalculateRSI_AllLosses(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 200 - float64(i)
	}
	rsi, err := CalculateRSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 0 {
		t.Errorf("expected RSI 0 for monotonic losses, got %f", rsi)
	}
}

func TestRSISeries_BoundedBetween0And100(t *testing.T) {
	prices := []float64{50, 52, 51, 53, 49, 55, 54, 56, 52, 58, 57, 60, 59, 61, 58, 63, 62, 64, 60, 66}
	rsi, err := RSISeries(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range rsi {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("rsi[%d] = %f out of [0,100]", i, v)
		}
	}
}

func TestRSISeries_Errors(t *testing.T) {
	if _, err := RSISeries([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
	if _, err := RSISeries([]float64{1, 2, 3}, 14); err == nil {
		t.Error("expected error for insufficient data")
	}
}
