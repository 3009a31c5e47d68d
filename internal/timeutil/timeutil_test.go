package timeutil

import (
	"testing"
	"time"
)

func TestClock12Noon(t *testing.T) {
	h12, m, ampm := Clock12(time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local))
	if h12 != 12 || m != 0 || ampm != "PM" {
		t.Errorf("noon = %d:%02d %s, want 12:00 PM", h12, m, ampm)
	}
}

func TestClock12Midnight(t *testing.T) {
	h12, _, ampm := Clock12(time.Date(2024, 3, 10, 0, 5, 0, 0, time.Local))
	if h12 != 12 || ampm != "AM" {
		t.Errorf("midnight = %d %s, want 12 AM", h12, ampm)
	}
}

func TestHour24RoundTrip(t *testing.T) {
	for h24 := 0; h24 < 24; h24++ {
		tm := time.Date(2024, 1, 1, h24, 0, 0, 0, time.Local)
		h12, _, ampm := Clock12(tm)
		if got := Hour24(h12, ampm); got != h24 {
			t.Errorf("Hour24(Clock12(%d)) = %d", h24, got)
		}
	}
}

func TestComposeZeroesSeconds(t *testing.T) {
	date := time.Date(2024, 3, 10, 14, 22, 53, 99, time.Local)
	got := Compose(date, 1, 30, "AM")
	want := time.Date(2024, 3, 10, 1, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Compose = %v, want %v", got, want)
	}
}

func TestComposePM(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	got := Compose(date, 5, 15, "PM")
	if got.Hour() != 17 || got.Minute() != 15 {
		t.Errorf("Compose 5:15 PM = %02d:%02d", got.Hour(), got.Minute())
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	tm := time.Date(2024, 3, 10, 2, 0, 0, 0, time.Local)
	if got := MinutesSinceMidnight(tm); got != 120 {
		t.Errorf("MinutesSinceMidnight = %d, want 120", got)
	}
}

func TestMinutePartsRoundTrip(t *testing.T) {
	for _, min := range []int{0, 1, 59, 60, 719, 720, 1020, 1439} {
		h12, m, ampm := MinuteParts(min)
		if got := PartsToMinutes(h12, m, ampm); got != min {
			t.Errorf("PartsToMinutes(MinuteParts(%d)) = %d", min, got)
		}
	}
}

func TestMinutePartsClamps(t *testing.T) {
	if h12, m, ampm := MinuteParts(-10); h12 != 12 || m != 0 || ampm != "AM" {
		t.Errorf("MinuteParts(-10) = %d:%02d %s, want 12:00 AM", h12, m, ampm)
	}
	if got := PartsToMinutes(MinuteParts(5000)); got != 1439 {
		t.Errorf("MinuteParts(5000) clamps to %d, want 1439", got)
	}
}

func TestFormatClock(t *testing.T) {
	tm := time.Date(2024, 3, 10, 13, 5, 0, 0, time.Local)
	if got := FormatClock(tm); got != "01:05 PM" {
		t.Errorf("FormatClock = %q, want %q", got, "01:05 PM")
	}
}

func TestDateString(t *testing.T) {
	tm := time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local)
	if got := DateString(tm); got != "2024-03-09" {
		t.Errorf("DateString = %q", got)
	}
}
