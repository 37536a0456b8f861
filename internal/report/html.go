package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"

	"github.com/dustin/go-humanize"
)

// RenderHTML renders the email body for a report.
func RenderHTML(r *Report) (string, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"num": func(v float64) string {
			if math.IsNaN(v) || v == 0 {
				return "N/A"
			}
			return humanize.CommafWithDigits(v, 1)
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}

	data := struct {
		*Report
		Generated  string
		SourceName string
		AlertCount int
		HitRatePct float64
	}{
		Report:     r,
		Generated:  r.GeneratedAt.Format("January 2, 2006 at 15:04 IST"),
		SourceName: r.Provenance.Description(),
		AlertCount: len(r.Companies),
		HitRatePct: r.HitRate(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return buf.String(), nil
}

const htmlTemplate = `<html>
<head>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f8f9fa; }
.container { max-width: 800px; margin: 0 auto; background-color: white; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
.header { background-color: #ffffff; border-bottom: 3px solid #007bff; padding: 25px; }
.header h1 { margin: 0; font-size: 28px; font-weight: 700; color: #2c3e50; }
.header .subtitle { margin: 10px 0 0 0; color: #6c757d; font-size: 16px; }
.header .meta-info { margin: 15px 0 0 0; padding: 12px; background-color: #f8f9fa; border-radius: 6px; border-left: 4px solid #007bff; }
.content { padding: 25px; }
.summary { background-color: #f8f9fa; border-left: 4px solid #007bff; padding: 20px; margin: 20px 0; border-radius: 6px; }
.metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; margin: 15px 0; }
.metric { background: white; padding: 20px; border-radius: 8px; border: 1px solid #e9ecef; text-align: center; }
.metric-value { font-size: 28px; font-weight: bold; color: #007bff; }
.metric-label { font-size: 13px; color: #6c757d; text-transform: uppercase; letter-spacing: 0.5px; margin-top: 5px; }
.signal-category { background: white; border: 1px solid #dee2e6; padding: 18px; margin: 12px 0; border-radius: 8px; }
.signal-category.buy { border-left: 5px solid #28a745; }
.signal-category.sell { border-left: 5px solid #dc3545; }
.signal-type { font-weight: 600; color: #495057; font-size: 16px; }
.signal-count { font-weight: 700; color: #007bff; font-size: 18px; margin: 0 8px; }
.buy-signal { color: #28a745; font-style: italic; }
.sell-signal { color: #dc3545; font-style: italic; }
.warning { background-color: #fff3cd; border: 1px solid #ffeaa7; color: #856404; padding: 20px; border-radius: 6px; }
.parameters { background-color: #f8f9fa; padding: 25px; border-radius: 8px; margin: 20px 0; }
.attachment-note { background: #e8f4fd; border: 1px solid #b8daff; padding: 18px; border-radius: 8px; margin: 20px 0; }
.disclaimer { font-size: 12px; color: #6c757d; margin-top: 25px; padding-top: 20px; border-top: 1px solid #dee2e6; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>NSE Technical Analysis Report</h1>
<div class="subtitle">Algorithmic Screening &amp; Technical Signal Detection</div>
<div class="meta-info">
<strong>Report Generated:</strong> {{.Generated}} &nbsp;&nbsp;|&nbsp;&nbsp;
<strong>Data Source:</strong> {{.SourceName}}
</div>
</div>
<div class="content">
<div class="summary">
<h2>Executive Summary</h2>
<div class="metrics">
<div class="metric"><div class="metric-value">{{.TotalAnalyzed}}</div><div class="metric-label">Stocks Analyzed</div></div>
<div class="metric"><div class="metric-value">{{.AlertCount}}</div><div class="metric-label">Signal Alerts</div></div>
<div class="metric"><div class="metric-value">{{pct .HitRatePct}}</div><div class="metric-label">Hit Rate</div></div>
</div>
{{if .Companies}}<p>Mean RSI of flagged securities: {{num .MeanRSI}} &nbsp;|&nbsp; Mean market cap: &#8377;{{num .MeanMarketCap}} Cr</p>{{end}}
</div>
{{if .Companies}}
<div class="summary">
<h2>Signal Distribution Analysis</h2>
<p>Technical indicators have identified the following trading opportunities based on RSI momentum and MACD crossover patterns:</p>
</div>
{{if gt .OversoldCount 0}}<div class="signal-category buy">
<span class="signal-type">RSI Oversold Conditions:</span><span class="signal-count">{{.OversoldCount}}</span><span class="signal-type">securities</span>
<div class="buy-signal">Potential Accumulation Opportunity</div>
</div>{{end}}
{{if gt .OverboughtCount 0}}<div class="signal-category sell">
<span class="signal-type">RSI Overbought Conditions:</span><span class="signal-count">{{.OverboughtCount}}</span><span class="signal-type">securities</span>
<div class="sell-signal">Potential Distribution Opportunity</div>
</div>{{end}}
{{if gt .BullishCount 0}}<div class="signal-category buy">
<span class="signal-type">MACD Bullish Crossovers:</span><span class="signal-count">{{.BullishCount}}</span><span class="signal-type">securities</span>
<div class="buy-signal">Momentum Confirmation Signals</div>
</div>{{end}}
{{if gt .BearishCount 0}}<div class="signal-category sell">
<span class="signal-type">MACD Bearish Crossovers:</span><span class="signal-count">{{.BearishCount}}</span><span class="signal-type">securities</span>
<div class="sell-signal">Momentum Deterioration Signals</div>
</div>{{end}}
<div class="attachment-note">
<strong>Detailed Analysis:</strong> Complete technical metrics, including individual RSI/MACD values, signal specifics, and fundamental screening criteria are provided in the attached CSV file.
</div>
{{else}}
<div class="warning">
<h3>Market Conditions Assessment</h3>
<p>Current market scan indicates no securities meeting the specified RSI oversold/overbought thresholds ({{.Params.RSIOversold}} / {{.Params.RSIOverbought}}) or MACD crossover criteria within the analyzed universe. This may indicate a consolidating market environment.</p>
</div>
{{end}}
<div class="parameters">
<h3>Technical Analysis Parameters</h3>
<ul>
<li>RSI period: {{.Params.RSIPeriod}} sessions, oversold &lt; {{.Params.RSIOversold}}, overbought &gt; {{.Params.RSIOverbought}}</li>
<li>MACD: fast EMA {{.Params.MACDFast}}, slow EMA {{.Params.MACDSlow}}, signal EMA {{.Params.MACDSignal}}</li>
<li>Screening: market cap &ge; &#8377;{{.Params.MinMarketCapCr}} Cr, daily turnover &ge; &#8377;{{.Params.MinDailyTurnoverCr}} Cr</li>
</ul>
</div>
<div class="disclaimer">
<p><strong>Important Disclaimer:</strong> This technical analysis is provided for informational and educational purposes only. It should not be construed as investment advice, recommendation, or solicitation to buy or sell any securities. Past performance does not guarantee future results. Please consult qualified financial advisors and conduct your own due diligence before making any investment decisions.</p>
</div>
</div>
</div>
</body>
</html>`
