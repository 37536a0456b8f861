package universe

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"NSESentinel/internal/model"
)

// NSEArchiveSource fetches the official NSE equity list CSV.
type NSEArchiveSource struct {
	URL    string
	Client *http.Client
}

// NewNSEArchiveSource creates the live source with optional proxy support.
func NewNSEArchiveSource(listURL, proxyURL string) *NSEArchiveSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NSEArchiveSource{
		URL: listURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (s *NSEArchiveSource) Name() string                 { return "nse_archive" }
func (s *NSEArchiveSource) Provenance() model.Provenance { return model.ProvenanceLive }

// Symbols downloads EQUITY_L.csv and returns the first column (ticker names).
func (s *NSEArchiveSource) Symbols() ([]string, error) {
	req, err := http.NewRequest(http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	// NSE rejects requests without a browser-like user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch equity list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch equity list: status %d", resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse equity list: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("equity list is empty")
	}

	// Skip the header row; first column is SYMBOL.
	symbols := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) == 0 || rec[0] == "" {
			continue
		}
		symbols = append(symbols, rec[0])
	}
	return symbols, nil
}
