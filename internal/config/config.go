package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Mail struct {
		Sender     string   `yaml:"sender"`
		Password   string   `yaml:"password"`
		Recipients []string `yaml:"recipients"`
		SMTPHost   string   `yaml:"smtp_host"`
		SMTPPort   int      `yaml:"smtp_port"`
	} `yaml:"mail"`
	Universe struct {
		EquityListURL string `yaml:"equity_list_url"`
		FallbackFile  string `yaml:"fallback_file"`
		MaxSymbols    int    `yaml:"max_symbols"` // 0 means no limit
	} `yaml:"universe"`
	Data struct {
		HistoryDays    int `yaml:"history_days"`
		MinDataPoints  int `yaml:"min_data_points"`
		MaxRetries     int `yaml:"max_retries"`
		RetryDelayMs   int `yaml:"retry_delay_ms"`
		RequestDelayMs int `yaml:"request_delay_ms"`
	} `yaml:"data"`
	Filters struct {
		MinMarketCapCr     float64 `yaml:"min_market_cap_cr"`
		MinDailyTurnoverCr float64 `yaml:"min_daily_turnover_cr"`
	} `yaml:"filters"`
	Indicators struct {
		RSIPeriod     int     `yaml:"rsi_period"`
		RSIOversold   float64 `yaml:"rsi_oversold"`
		RSIOverbought float64 `yaml:"rsi_overbought"`
		MACDFast      int     `yaml:"macd_fast"`
		MACDSlow      int     `yaml:"macd_slow"`
		MACDSignal    int     `yaml:"macd_signal"`
	} `yaml:"indicators"`
	Pools struct {
		ScreenerWorkers int `yaml:"screener_workers"`
		AnalysisWorkers int `yaml:"analysis_workers"`
	} `yaml:"pools"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Report struct {
		ChartDir string `yaml:"chart_dir"`
		LogFile  string `yaml:"log_file"`
	} `yaml:"report"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		cfg.Mail.Sender = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("EMAIL_RECIPIENTS"); v != "" {
		cfg.Mail.Recipients = splitRecipients(v)
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.Mail.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.SMTPPort = port
		}
	}
	if v := os.Getenv("MAX_SYMBOLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Universe.MaxSymbols = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Mail.SMTPHost == "" {
		cfg.Mail.SMTPHost = "smtp.gmail.com"
	}
	if cfg.Mail.SMTPPort == 0 {
		cfg.Mail.SMTPPort = 587
	}
	if cfg.Universe.EquityListURL == "" {
		cfg.Universe.EquityListURL = "https://nsearchives.nseindia.com/content/equities/EQUITY_L.csv"
	}
	if cfg.Universe.FallbackFile == "" {
		cfg.Universe.FallbackFile = "data/nse_symbols.txt"
	}
	if cfg.Data.HistoryDays == 0 {
		cfg.Data.HistoryDays = 180
	}
	if cfg.Data.MinDataPoints == 0 {
		cfg.Data.MinDataPoints = 50
	}
	if cfg.Data.MaxRetries == 0 {
		cfg.Data.MaxRetries = 3
	}
	if cfg.Data.RetryDelayMs == 0 {
		cfg.Data.RetryDelayMs = 1000
	}
	if cfg.Data.RequestDelayMs == 0 {
		cfg.Data.RequestDelayMs = 100
	}
	if cfg.Filters.MinMarketCapCr == 0 {
		cfg.Filters.MinMarketCapCr = 500
	}
	if cfg.Filters.MinDailyTurnoverCr == 0 {
		cfg.Filters.MinDailyTurnoverCr = 1
	}
	if cfg.Indicators.RSIPeriod == 0 {
		cfg.Indicators.RSIPeriod = 14
	}
	if cfg.Indicators.RSIOversold == 0 {
		cfg.Indicators.RSIOversold = 20
	}
	if cfg.Indicators.RSIOverbought == 0 {
		cfg.Indicators.RSIOverbought = 80
	}
	if cfg.Indicators.MACDFast == 0 {
		cfg.Indicators.MACDFast = 12
	}
	if cfg.Indicators.MACDSlow == 0 {
		cfg.Indicators.MACDSlow = 26
	}
	if cfg.Indicators.MACDSignal == 0 {
		cfg.Indicators.MACDSignal = 9
	}
	if cfg.Pools.ScreenerWorkers == 0 {
		cfg.Pools.ScreenerWorkers = 6
	}
	if cfg.Pools.AnalysisWorkers == 0 {
		cfg.Pools.AnalysisWorkers = 4
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 18 * * 1-5" // after NSE close, Mon-Fri
	}
	if cfg.Report.LogFile == "" {
		cfg.Report.LogFile = "technical_analysis.log"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Mail.Sender == "" {
		return fmt.Errorf("mail.sender is required (EMAIL_SENDER)")
	}
	if c.Mail.Password == "" {
		return fmt.Errorf("mail.password is required (EMAIL_PASSWORD)")
	}
	if len(c.Mail.Recipients) == 0 {
		return fmt.Errorf("mail.recipients is required (EMAIL_RECIPIENTS)")
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("indicators.macd_fast must be less than macd_slow")
	}
	if c.Indicators.RSIOversold >= c.Indicators.RSIOverbought {
		return fmt.Errorf("indicators.rsi_oversold must be less than rsi_overbought")
	}
	if c.Filters.MinMarketCapCr < 0 || c.Filters.MinDailyTurnoverCr < 0 {
		return fmt.Errorf("filter thresholds must not be negative")
	}
	return nil
}

// RetryDelay returns the base delay between fetch retries.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Data.RetryDelayMs) * time.Millisecond
}

// RequestDelay returns the pause inserted between consecutive API requests.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Data.RequestDelayMs) * time.Millisecond
}

func splitRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
