package universe

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"NSESentinel/internal/model"
)

// FileSource reads symbols from a local fallback file, one per line.
// Blank lines and #-comments are ignored.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (s *FileSource) Name() string                 { return "fallback_file" }
func (s *FileSource) Provenance() model.Provenance { return model.ProvenanceLocalFile }

func (s *FileSource) Symbols() ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open fallback file: %w", err)
	}
	defer f.Close()

	var symbols []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read fallback file: %w", err)
	}
	return symbols, nil
}

// emergencySymbols is the last-resort universe when both the live source
// and the fallback file are unavailable.
var emergencySymbols = []string{
	"RELIANCE", "TCS", "HDFCBANK", "INFY", "HINDUNILVR",
	"ICICIBANK", "KOTAKBANK", "BHARTIARTL", "SBIN", "BAJFINANCE",
}

// EmergencySource serves the built-in list of large-cap NSE stocks.
type EmergencySource struct{}

func NewEmergencySource() *EmergencySource { return &EmergencySource{} }

func (s *EmergencySource) Name() string                 { return "emergency_list" }
func (s *EmergencySource) Provenance() model.Provenance { return model.ProvenanceEmergency }

func (s *EmergencySource) Symbols() ([]string, error) {
	out := make([]string, len(emergencySymbols))
	copy(out, emergencySymbols)
	return out, nil
}
