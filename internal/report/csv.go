package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strings"
)

var csvHeader = []string{
	"Symbol", "Company_Name", "Current_Price_Rs", "Total_Signals", "Signal_Details",
	"RSI", "MACD", "MACD_Signal", "MACD_Histogram",
	"Market_Cap_Cr", "Daily_Volume_Cr", "Data_Source", "Report_Generated",
}

// Strips numeric values in parentheses, e.g. "RSI Oversold (18.42)" -> "RSI Oversold".
var parenNumber = regexp.MustCompile(`\s*\([0-9.]+\)`)

// BuildCSV renders the per-company signal table as a CSV attachment.
func BuildCSV(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	generated := r.GeneratedAt.Format("2006-01-02 15:04:05")
	for _, c := range r.Companies {
		details := make([]string, len(c.Signals))
		for i, s := range c.Signals {
			details[i] = parenNumber.ReplaceAllString(s.Description, "")
		}
		detail := "None"
		if len(details) > 0 {
			detail = strings.Join(details, "; ")
		}

		row := []string{
			c.Symbol,
			c.CompanyName,
			fmtPositive(c.CurrentPrice, "%.2f"),
			fmt.Sprintf("%d", len(c.Signals)),
			detail,
			fmtValue(c.RSI, "%.2f"),
			fmtValue(c.MACD, "%.4f"),
			fmtValue(c.MACDSignal, "%.4f"),
			fmtValue(c.MACDHist, "%.4f"),
			fmtPositive(c.MarketCapCr, "%.1f"),
			fmtPositive(c.DailyTurnoverCr, "%.1f"),
			string(r.Provenance),
			generated,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtValue(v float64, format string) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf(format, v)
}

func fmtPositive(v float64, format string) string {
	if math.IsNaN(v) || v <= 0 {
		return "N/A"
	}
	return fmt.Sprintf(format, v)
}
