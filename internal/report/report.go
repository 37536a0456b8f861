package report

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"NSESentinel/internal/model"
)

// Params echoes the run configuration into the report footer.
type Params struct {
	RSIPeriod          int
	RSIOversold        float64
	RSIOverbought      float64
	MACDFast           int
	MACDSlow           int
	MACDSignal         int
	MinMarketCapCr     float64
	MinDailyTurnoverCr float64
}

// Report is the assembled output of one pipeline run.
type Report struct {
	GeneratedAt   time.Time
	Provenance    model.Provenance
	TotalAnalyzed int
	Companies     []model.StockAnalysis
	Params        Params

	// Signal distribution
	OversoldCount   int
	OverboughtCount int
	BullishCount    int
	BearishCount    int

	// Summary statistics over signal stocks
	MeanRSI       float64
	MeanMarketCap float64
}

// Build assembles a Report from the analysis results.
func Build(companies []model.StockAnalysis, prov model.Provenance, totalAnalyzed int, params Params) *Report {
	r := &Report{
		GeneratedAt:   time.Now(),
		Provenance:    prov,
		TotalAnalyzed: totalAnalyzed,
		Companies:     companies,
		Params:        params,
	}

	var rsis, caps []float64
	for _, c := range companies {
		if !math.IsNaN(c.RSI) {
			rsis = append(rsis, c.RSI)
		}
		if c.MarketCapCr > 0 {
			caps = append(caps, c.MarketCapCr)
		}
		for _, s := range c.Signals {
			switch s.Type {
			case model.SignalRSIOversold:
				r.OversoldCount++
			case model.SignalRSIOverbought:
				r.OverboughtCount++
			case model.SignalMACDBullish:
				r.BullishCount++
			case model.SignalMACDBearish:
				r.BearishCount++
			}
		}
	}
	if len(rsis) > 0 {
		r.MeanRSI = stat.Mean(rsis, nil)
	}
	if len(caps) > 0 {
		r.MeanMarketCap = stat.Mean(caps, nil)
	}
	return r
}

// Subject returns the email subject line for this report.
func (r *Report) Subject() string {
	return fmt.Sprintf("NSE Technical Analysis Report - %s (%d signals)",
		r.GeneratedAt.Format("2006-01-02"), len(r.Companies))
}

// HitRate returns the share of analyzed stocks that produced signals, in percent.
func (r *Report) HitRate() float64 {
	if r.TotalAnalyzed == 0 {
		return 0
	}
	return float64(len(r.Companies)) / float64(r.TotalAnalyzed) * 100
}

// CSVFilename returns the timestamped attachment name.
func (r *Report) CSVFilename() string {
	return fmt.Sprintf("nse_technical_analysis_%s.csv", r.GeneratedAt.Format("20060102_150405"))
}
