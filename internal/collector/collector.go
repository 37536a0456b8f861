package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"NSESentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars  map[string][]model.OHLCV
	Infos map[string]*model.StockInfo
	Price float64
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateBars(m.Price, days), nil
}

func (m *MockFetcher) FetchStockInfo(symbol string) (*model.StockInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if info, ok := m.Infos[symbol]; ok {
		return info, nil
	}
	return &model.StockInfo{Symbol: symbol, CompanyName: symbol, CurrentPrice: m.Price}, nil
}

// GenerateBars produces a gently trending synthetic series for tests.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector wraps a Fetcher with retry, pacing and series validation.
type Collector struct {
	Fetcher       Fetcher
	HistoryDays   int
	MinDataPoints int
	MaxRetries    int
	RetryDelay    time.Duration
	RequestDelay  time.Duration
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays, minDataPoints, maxRetries int, retryDelay, requestDelay time.Duration) *Collector {
	return &Collector{
		Fetcher:       fetcher,
		HistoryDays:   historyDays,
		MinDataPoints: minDataPoints,
		MaxRetries:    maxRetries,
		RetryDelay:    retryDelay,
		RequestDelay:  requestDelay,
	}
}

// FetchSeries downloads and validates the daily price series for one symbol,
// retrying with linear backoff on failure.
func (c *Collector) FetchSeries(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	var lastErr error
	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		bars, err := c.Fetcher.FetchDailyBars(symbol, c.HistoryDays)
		if err == nil {
			if err := ValidateBars(symbol, bars, c.MinDataPoints); err != nil {
				// Bad data will not improve on retry.
				return nil, err
			}
			c.pace(ctx)
			return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
		}
		lastErr = err
		if attempt < c.MaxRetries {
			backoff := c.RetryDelay * time.Duration(attempt)
			log.Printf("[WARN] fetch %s attempt %d/%d failed: %v, retrying in %v", symbol, attempt, c.MaxRetries, err, backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}
	return nil, fmt.Errorf("fetch %s: all %d attempts failed: %w", symbol, c.MaxRetries, lastErr)
}

// FetchInfo looks up quote data for one symbol with request pacing.
func (c *Collector) FetchInfo(ctx context.Context, symbol string) (*model.StockInfo, error) {
	info, err := c.Fetcher.FetchStockInfo(symbol)
	if err != nil {
		return nil, err
	}
	c.pace(ctx)
	return info, nil
}

// pace inserts the configured delay between API requests to avoid rate limits.
func (c *Collector) pace(ctx context.Context) {
	if c.RequestDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.RequestDelay):
	}
}

// ValidateBars checks a fetched series for completeness and sane prices.
func ValidateBars(symbol string, bars []model.OHLCV, minPoints int) error {
	if len(bars) == 0 {
		return fmt.Errorf("%s: no data available", symbol)
	}
	if len(bars) < minPoints {
		return fmt.Errorf("%s: insufficient data: %d points (min %d)", symbol, len(bars), minPoints)
	}
	for _, b := range bars {
		if b.Close <= 0 {
			return fmt.Errorf("%s: invalid price data: non-positive close", symbol)
		}
	}
	return nil
}
