package calculator

import (
	"math"
	"testing"
)

func constantPrices(v float64, n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = v
	}
	return prices
}

func TestCalculateMACD_ConstantPrices(t *testing.T) {
	res, err := CalculateMACD(constantPrices(100, 60), 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(res.Line)
	if n != 60 {
		t.Fatalf("expected 60 values, got %d", n)
	}
	// With a flat series both EMAs equal the price, so everything is zero.
	for _, v := range []float64{res.Line[n-1], res.Signal[n-1], res.Histogram[n-1]} {
		if math.Abs(v) > 1e-9 {
			t.Errorf("expected ~0 for flat series, got %f", v)
		}
	}
}

func TestCalculateMACD_WarmupIsNaN(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + float64(i%7)
	}
	res, err := CalculateMACD(prices, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 25; i++ {
		if !math.IsNaN(res.Line[i]) {
			t.Errorf("line[%d] = %f, expected NaN before slow warm-up", i, res.Line[i])
		}
		if !math.IsNaN(res.Signal[i]) {
			t.Errorf("signal[%d] = %f, expected NaN before warm-up", i, res.Signal[i])
		}
	}
	last := len(prices) - 1
	if math.IsNaN(res.Line[last]) || math.IsNaN(res.Signal[last]) || math.IsNaN(res.Histogram[last]) {
		t.Error("latest MACD values must not be NaN")
	}
}

func TestCalculateMACD_UptrendPositiveLine(t *testing.T) {
	prices := make([]float64, 80)
	for i := range prices {
		prices[i] = 100 * math.Pow(1.01, float64(i))
	}
	res, err := CalculateMACD(prices, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := len(prices) - 1
	if res.Line[last] <= 0 {
		t.Errorf("expected positive MACD line in sustained uptrend, got %f", res.Line[last])
	}
	if res.Histogram[last] != res.Line[last]-res.Signal[last] {
		t.Errorf("histogram must equal line minus signal")
	}
}

func TestCalculateMACD_Errors(t *testing.T) {
	prices := constantPrices(100, 60)
	if _, err := CalculateMACD(prices, 26, 12, 9); err == nil {
		t.Error("expected error when fast >= slow")
	}
	if _, err := CalculateMACD(prices[:20], 12, 26, 9); err == nil {
		t.Error("expected error for insufficient data")
	}
	if _, err := CalculateMACD(prices, 0, 26, 9); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateEMA(t *testing.T) {
	// period 3 -> a = 0.5; seeded at first price.
	ema, err := CalculateEMA([]float64{10, 20, 20}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{10, 15, 17.5}
	for i := range want {
		if math.Abs(ema[i]-want[i]) > 1e-9 {
			t.Errorf("ema[%d] = %f, expected %f", i, ema[i], want[i])
		}
	}
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sma != 4 {
		t.Errorf("expected SMA 4 over last 3 values, got %f", sma)
	}
}
