package services

import (
	"context"
	"testing"
)

func TestDashboardStats(t *testing.T) {
	svc := NewDashboardService(fixedCounter(3), fixedCounter(5), fixedCounter(2), fixedCounter(4))
	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st != (Stats{Articles: 3, Sections: 5, Events: 2, Categories: 4}) {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestDashboardStatsError(t *testing.T) {
	svc := NewDashboardService(fixedCounter(1), failingCounter{}, fixedCounter(1), fixedCounter(1))
	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
