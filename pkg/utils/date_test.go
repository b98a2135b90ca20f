package utils

import (
	"testing"
	"time"
)

func TestDayStartEnd(t *testing.T) {
	ts := time.Date(2026, time.March, 2, 14, 30, 45, 123, time.Local)

	start := DayStart(ts)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Fatalf("DayStart(%v) = %v, not midnight", ts, start)
	}
	if !SameDay(ts, start) {
		t.Fatalf("DayStart changed the calendar date: %v -> %v", ts, start)
	}

	end := DayEnd(ts)
	if got := end.Sub(start); got != 24*time.Hour {
		t.Fatalf("expected 24h between DayStart and DayEnd, got %v", got)
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2026-03-02", false}, // Monday
		{"2026-03-06", false}, // Friday
		{"2026-03-07", true},  // Saturday
		{"2026-03-08", true},  // Sunday
	}

	for _, tt := range tests {
		d, err := time.ParseInLocation("2006-01-02", tt.date, time.Local)
		if err != nil {
			t.Fatal(err)
		}
		if got := IsWeekend(d); got != tt.want {
			t.Fatalf("IsWeekend(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
