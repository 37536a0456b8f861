package model

// IndicatorSeries holds the full indicator history for one symbol.
// Entries before an indicator's warm-up period are NaN.
type IndicatorSeries struct {
	RSI        []float64
	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64
}
