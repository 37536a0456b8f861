package analyzer

import (
	"fmt"
	"math"

	"NSESentinel/internal/model"
)

// Classify applies the RSI threshold and MACD crossover rules to a
// computed analysis and returns the detected signals.
func Classify(a *model.StockAnalysis, p Params) []model.Signal {
	var signals []model.Signal
	signals = append(signals, rsiSignals(a.RSI, p)...)
	signals = append(signals, macdSignals(a.Indicators, p)...)
	return signals
}

func rsiSignals(rsi float64, p Params) []model.Signal {
	if math.IsNaN(rsi) {
		return nil
	}
	switch {
	case rsi < p.RSIOversold:
		return []model.Signal{{
			Type:        model.SignalRSIOversold,
			Description: fmt.Sprintf("RSI Oversold (%.2f) - Potential Buy", rsi),
		}}
	case rsi > p.RSIOverbought:
		return []model.Signal{{
			Type:        model.SignalRSIOverbought,
			Description: fmt.Sprintf("RSI Overbought (%.2f) - Potential Sell", rsi),
		}}
	}
	return nil
}

func macdSignals(ind *model.IndicatorSeries, _ Params) []model.Signal {
	if ind == nil {
		return nil
	}
	n := len(ind.MACD)
	if n < 2 || len(ind.MACDSignal) < n || len(ind.MACDHist) < n {
		return nil
	}

	latestMACD := ind.MACD[n-1]
	latestSignal := ind.MACDSignal[n-1]
	prevHist := ind.MACDHist[n-2]

	if math.IsNaN(latestMACD) || math.IsNaN(latestSignal) || math.IsNaN(prevHist) {
		return nil
	}

	// A crossover fires when the line crosses the signal between the
	// previous bar (histogram sign) and the current bar.
	switch {
	case latestMACD > latestSignal && prevHist <= 0:
		return []model.Signal{{
			Type:        model.SignalMACDBullish,
			Description: "MACD Bullish Crossover - Buy Signal",
		}}
	case latestMACD < latestSignal && prevHist >= 0:
		return []model.Signal{{
			Type:        model.SignalMACDBearish,
			Description: "MACD Bearish Crossover - Sell Signal",
		}}
	}
	return nil
}
