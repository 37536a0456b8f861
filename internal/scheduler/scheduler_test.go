package scheduler

import (
	"context"
	"testing"

	"NSESentinel/internal/report"
)

func TestRegisterAll_ValidCronSpec(t *testing.T) {
	s := NewScheduler(context.Background(), nil, nil, nil, nil, nil, nil, report.Params{})
	if err := s.RegisterAll("0 30 18 * * 1-5"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Cron.Entries()) != 1 {
		t.Errorf("expected 1 registered entry, got %d", len(s.Cron.Entries()))
	}
}

func TestRegisterAll_InvalidCronSpec(t *testing.T) {
	s := NewScheduler(context.Background(), nil, nil, nil, nil, nil, nil, report.Params{})
	if err := s.RegisterAll("not a cron spec"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}
