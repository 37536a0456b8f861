package calculator

import "errors"

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA computes the exponential moving average series.
// The first element seeds the series; smoothing factor is 2/(period+1).
func CalculateEMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, errors.New("not enough data for EMA calculation")
	}
	ema := make([]float64, len(prices))
	ema[0] = prices[0]

	a := 2.0 / (float64(period) + 1)
	for i := 1; i < len(prices); i++ {
		ema[i] = prices[i]*a + ema[i-1]*(1-a)
	}
	return ema, nil
}
