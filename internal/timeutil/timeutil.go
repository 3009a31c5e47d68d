// Package timeutil holds the pure wall-clock conversions the rest of the
// app builds on: 12-hour display parts, minutes since midnight, calendar
// date strings. Everything here is local time; there is no timezone math.
package timeutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date form used for business dates and
	// persisted date strings.
	DateLayout = "2006-01-02"
	// TimestampLayout is the persisted human-readable timestamp form.
	TimestampLayout = "2006-01-02 15:04:05"
	// PrettyDateLayout is the header form shown on entry and ledger screens.
	PrettyDateLayout = "Mon 02 Jan 2006"
)

// MinutesSinceMidnight returns t's time of day in minutes, 0..1439.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// StartOfDay zeroes the time-of-day fields of t, keeping its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString renders t as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// Clock12 splits t into 12-hour display parts.
func Clock12(t time.Time) (hour12, minute int, ampm string) {
	h24 := t.Hour()
	ampm = "AM"
	if h24 >= 12 {
		ampm = "PM"
	}
	hour12 = h24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return hour12, t.Minute(), ampm
}

// Hour24 converts 12-hour parts back to a 24-hour value.
// hour12 is taken mod 12, so 12 AM maps to 0 and 12 PM to 12.
func Hour24(hour12 int, ampm string) int {
	h := hour12 % 12
	if ampm == "PM" {
		h += 12
	}
	return h
}

// Compose combines a calendar date with 12-hour time parts into an instant
// on that date. Seconds and below are zeroed.
func Compose(date time.Time, hour12, minute int, ampm string) time.Time {
	d := StartOfDay(date)
	return time.Date(d.Year(), d.Month(), d.Day(), Hour24(hour12, ampm), minute, 0, 0, d.Location())
}

// FormatClock renders t as a padded 12-hour clock string, e.g. "01:30 AM".
func FormatClock(t time.Time) string {
	h12, m, ampm := Clock12(t)
	return fmt.Sprintf("%02d:%02d %s", h12, m, ampm)
}

// FormatClockParts renders already-split parts the same way FormatClock does.
func FormatClockParts(hour12, minute int, ampm string) string {
	return fmt.Sprintf("%02d:%02d %s", hour12, minute, ampm)
}

// FormatTimestamp renders t as YYYY-MM-DD HH:MM:SS.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatPrettyDate renders t like "Mon 01 Jan 2026".
func FormatPrettyDate(t time.Time) string {
	return t.Format(PrettyDateLayout)
}

// MinuteParts splits a minutes-since-midnight value into 12-hour parts.
// Out-of-range input is clamped into 0..1439.
func MinuteParts(minutes int) (hour12, minute int, ampm string) {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > 23*60+59 {
		minutes = 23*60 + 59
	}
	h24 := minutes / 60
	minute = minutes % 60
	ampm = "AM"
	if h24 >= 12 {
		ampm = "PM"
	}
	hour12 = h24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return hour12, minute, ampm
}

// PartsToMinutes converts 12-hour parts to minutes since midnight.
func PartsToMinutes(hour12, minute int, ampm string) int {
	return Hour24(hour12, ampm)*60 + minute
}

// FromEpochMillis converts an epoch-milliseconds instant to local time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
