package handlers

import (
	"testing"
	"time"
)

// TestParseClassTimes проверяет разбор корректного интервала занятия.
func TestParseClassTimes(t *testing.T) {
	start, end, err := parseClassTimes("2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !start.Equal(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start time %v", start)
	}
	if end.Sub(start) != time.Hour {
		t.Fatalf("expected one hour interval, got %v", end.Sub(start))
	}
}

// TestParseClassTimesInvalid проверяет отказ на некорректном формате.
func TestParseClassTimesInvalid(t *testing.T) {
	if _, _, err := parseClassTimes("not-a-time", "2026-09-01T11:00:00Z"); err == nil {
		t.Fatal("expected error for invalid start time")
	}

	if _, _, err := parseClassTimes("2026-09-01T10:00:00Z", "yesterday"); err == nil {
		t.Fatal("expected error for invalid end time")
	}
}

// TestParseClassTimesEndBeforeStart проверяет требование end > start.
func TestParseClassTimesEndBeforeStart(t *testing.T) {
	if _, _, err := parseClassTimes("2026-09-01T11:00:00Z", "2026-09-01T10:00:00Z"); err == nil {
		t.Fatal("expected error when end is before start")
	}

	if _, _, err := parseClassTimes("2026-09-01T10:00:00Z", "2026-09-01T10:00:00Z"); err == nil {
		t.Fatal("expected error when end equals start")
	}
}

// TestParseTimeFilter проверяет необязательный фильтр времени.
func TestParseTimeFilter(t *testing.T) {
	parsed, err := parseTimeFilter("2026-09-01T10:00:00Z")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed == nil {
		t.Fatal("expected parsed time, got nil")
	}

	empty, err := parseTimeFilter("   ")
	if err != nil {
		t.Fatalf("expected no error for empty filter, got %v", err)
	}
	if empty != nil {
		t.Fatalf("expected nil for empty filter, got %v", empty)
	}

	if _, err := parseTimeFilter("01.09.2026"); err == nil {
		t.Fatal("expected error for non-RFC3339 filter")
	}
}
