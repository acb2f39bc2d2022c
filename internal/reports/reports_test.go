package reports

import (
	"testing"
	"time"
)

func TestDayRange_CoversCalendarDay(t *testing.T) {
	at := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	start, end := DayRange(at)

	if !start.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %s, want midnight of the same day", start)
	}
	if !end.Equal(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %s, want midnight of the next day", end)
	}

	if start.After(at) || !at.Before(end) {
		t.Error("expected the instant to fall within its own day range")
	}

	// Half-open interval: next-day midnight is excluded.
	nextDay := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	if nextDay.Before(end) {
		t.Error("expected next-day midnight to be excluded from the range")
	}
}

func TestDailySalesKey_FormatsDate(t *testing.T) {
	at := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	want := "reports:daily-sales:2024-06-15"
	if got := dailySalesKey(at); got != want {
		t.Errorf("dailySalesKey = %q, want %q", got, want)
	}
}
