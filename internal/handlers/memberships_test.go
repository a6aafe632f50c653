package handlers

import (
	"testing"
	"time"
)

// TestMembershipWindow проверяет вычисление периода действия абонемента.
func TestMembershipWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	start, end := membershipWindow(now, 30)

	if !start.Equal(now) {
		t.Fatalf("expected start %v, got %v", now, start)
	}
	if end.Sub(start) != 30*24*time.Hour {
		t.Fatalf("expected 30 days, got %v", end.Sub(start))
	}
}

// TestMembershipWindowNormalizesToUTC проверяет приведение начала к UTC.
func TestMembershipWindowNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, loc)

	start, _ := membershipWindow(now, 7)

	if start.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", start.Location())
	}
	if !start.Equal(now) {
		t.Fatalf("expected same instant, got %v vs %v", start, now)
	}
}
