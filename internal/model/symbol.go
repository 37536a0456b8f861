package model

// Crore is 10^7 rupees, the unit Indian market caps are quoted in.
const Crore = 1e7

// Provenance indicates which tier supplied the symbol universe for a run.
type Provenance string

const (
	ProvenanceLive      Provenance = "live_website"
	ProvenanceLocalFile Provenance = "first_fallback"
	ProvenanceEmergency Provenance = "second_fallback"
)

// Description returns a human-readable label for report headers.
func (p Provenance) Description() string {
	switch p {
	case ProvenanceLive:
		return "Live NSE Website"
	case ProvenanceLocalFile:
		return "Local Fallback File"
	case ProvenanceEmergency:
		return "Popular Stocks List (Emergency Fallback)"
	default:
		return string(p)
	}
}

// StockInfo holds per-symbol quote data used by the screening stage.
type StockInfo struct {
	Symbol        string
	CompanyName   string
	CurrentPrice  float64
	MarketCap     float64 // rupees
	AvgVolume     float64 // shares per day
	DailyTurnover float64 // rupees per day, AvgVolume * CurrentPrice
}

// MarketCapCrores returns the market cap in crores.
func (s StockInfo) MarketCapCrores() float64 { return s.MarketCap / Crore }

// DailyTurnoverCrores returns the average daily turnover in crores.
func (s StockInfo) DailyTurnoverCrores() float64 { return s.DailyTurnover / Crore }
