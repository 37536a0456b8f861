package universe

import (
	"fmt"
	"log"
	"strings"

	"NSESentinel/internal/model"
)

// Source supplies a raw list of NSE ticker symbols (without exchange suffix).
type Source interface {
	Symbols() ([]string, error)
	Provenance() model.Provenance
	Name() string
}

// Loader walks the configured source tiers and returns the first
// non-empty symbol list, converted to Yahoo Finance format (.NS suffix).
type Loader struct {
	Sources    []Source
	MaxSymbols int // 0 means no limit
}

// NewLoader builds the standard three-tier chain: live NSE archive,
// local fallback file, built-in emergency list.
func NewLoader(equityListURL, fallbackFile, proxy string, maxSymbols int) *Loader {
	return &Loader{
		Sources: []Source{
			NewNSEArchiveSource(equityListURL, proxy),
			NewFileSource(fallbackFile),
			NewEmergencySource(),
		},
		MaxSymbols: maxSymbols,
	}
}

// Load returns the symbol universe and the provenance of the tier that supplied it.
func (l *Loader) Load() ([]string, model.Provenance, error) {
	var lastErr error
	for _, src := range l.Sources {
		symbols, err := src.Symbols()
		if err != nil {
			log.Printf("[WARN] universe source %s failed: %v", src.Name(), err)
			lastErr = err
			continue
		}
		if len(symbols) == 0 {
			log.Printf("[WARN] universe source %s returned no symbols", src.Name())
			continue
		}

		out := toYahooFormat(symbols)
		if l.MaxSymbols > 0 && len(out) > l.MaxSymbols {
			out = out[:l.MaxSymbols]
			log.Printf("[INFO] universe limited to %d symbols", len(out))
		}
		log.Printf("[INFO] universe loaded: %d symbols from %s", len(out), src.Name())
		return out, src.Provenance(), nil
	}
	return nil, "", fmt.Errorf("all universe sources failed: %w", lastErr)
}

// toYahooFormat appends the NSE exchange suffix expected by Yahoo Finance.
func toYahooFormat(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.HasSuffix(s, ".NS") {
			s += ".NS"
		}
		out = append(out, s)
	}
	return out
}
