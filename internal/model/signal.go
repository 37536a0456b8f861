package model

// SignalType classifies a detected technical signal.
type SignalType string

const (
	SignalRSIOversold   SignalType = "RSI_OVERSOLD"
	SignalRSIOverbought SignalType = "RSI_OVERBOUGHT"
	SignalMACDBullish   SignalType = "MACD_BULLISH_CROSS"
	SignalMACDBearish   SignalType = "MACD_BEARISH_CROSS"
)

// Bullish reports whether the signal suggests accumulation.
func (t SignalType) Bullish() bool {
	return t == SignalRSIOversold || t == SignalMACDBullish
}

// Signal is a single classified signal with its report text.
type Signal struct {
	Type        SignalType
	Description string
}

// StockAnalysis is the per-symbol output of the analysis stage.
type StockAnalysis struct {
	Symbol       string
	CompanyName  string
	CurrentPrice float64

	RSI        float64 // latest, NaN if warm-up not reached
	MACD       float64
	MACDSignal float64
	MACDHist   float64

	Signals    []Signal
	DataPoints int

	MarketCapCr     float64
	DailyTurnoverCr float64

	Series     *PriceSeries
	Indicators *IndicatorSeries
}

// HasSignals reports whether any signal was detected for the symbol.
func (a *StockAnalysis) HasSignals() bool { return len(a.Signals) > 0 }
