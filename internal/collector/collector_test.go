package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"NSESentinel/internal/model"
)

// flakyFetcher fails a fixed number of times before succeeding.
type flakyFetcher struct {
	failures int
	calls    int
}

func (f *flakyFetcher) Name() string { return "flaky" }

func (f *flakyFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient network error")
	}
	return GenerateBars(100, days), nil
}

func (f *flakyFetcher) FetchStockInfo(symbol string) (*model.StockInfo, error) {
	return &model.StockInfo{Symbol: symbol}, nil
}

func TestFetchSeries_RetriesTransientFailures(t *testing.T) {
	fetcher := &flakyFetcher{failures: 2}
	col := NewCollector(fetcher, 100, 50, 3, time.Millisecond, 0)

	series, err := col.FetchSeries(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 3 {
		t.Errorf("expected 3 fetch attempts, got %d", fetcher.calls)
	}
	if len(series.Bars) != 100 {
		t.Errorf("expected 100 bars, got %d", len(series.Bars))
	}
}

func TestFetchSeries_ExhaustsRetries(t *testing.T) {
	fetcher := &flakyFetcher{failures: 10}
	col := NewCollector(fetcher, 100, 50, 3, time.Millisecond, 0)

	if _, err := col.FetchSeries(context.Background(), "RELIANCE.NS"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if fetcher.calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", fetcher.calls)
	}
}

func TestFetchSeries_NoRetryOnBadData(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: map[string][]model.OHLCV{
			"SHORT.NS": GenerateBars(100, 10),
		},
	}
	col := NewCollector(fetcher, 100, 50, 3, time.Millisecond, 0)

	// Validation failures must not be retried.
	if _, err := col.FetchSeries(context.Background(), "SHORT.NS"); err == nil {
		t.Fatal("expected error for insufficient data")
	}
}

func TestValidateBars(t *testing.T) {
	tests := []struct {
		name    string
		bars    []model.OHLCV
		wantErr bool
	}{
		{"valid series", GenerateBars(100, 60), false},
		{"empty series", nil, true},
		{"too few points", GenerateBars(100, 10), true},
		{"non-positive close", append(GenerateBars(100, 59), model.OHLCV{Close: 0}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBars("TEST.NS", tt.bars, 50)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBars() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestFetchInfo(t *testing.T) {
	fetcher := &MockFetcher{
		Infos: map[string]*model.StockInfo{
			"TCS.NS": {Symbol: "TCS.NS", CompanyName: "Tata Consultancy Services", MarketCap: 12e12},
		},
	}
	col := NewCollector(fetcher, 100, 50, 1, 0, 0)

	got, err := col.FetchInfo(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CompanyName != "Tata Consultancy Services" {
		t.Errorf("unexpected company name: %s", got.CompanyName)
	}
	if got.MarketCapCrores() != 12e12/model.Crore {
		t.Errorf("unexpected market cap in crores: %f", got.MarketCapCrores())
	}
}
