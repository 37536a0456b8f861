package collector

import "NSESentinel/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	FetchStockInfo(symbol string) (*model.StockInfo, error)
	Name() string
}
