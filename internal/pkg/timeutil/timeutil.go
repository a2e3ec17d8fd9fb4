// Package timeutil provides the clock-face arithmetic shared by the attendance
// calculators: anchoring "HH:MM" labels to a calendar date, minute differences,
// and interval overlap. Time-card exports carry wall-clock labels only, so all
// helpers work on date-anchored time.Time values in the date's location.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseClock parses a "HH:MM" or "HH:MM:SS" label into minutes since midnight.
// Seconds are ignored; time-card machines stamp whole minutes.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock label %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock label %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock label %q: %w", s, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock label %q out of range", s)
	}

	return hours*60 + minutes, nil
}

// MustParseClock is ParseClock for static configuration values.
func MustParseClock(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

// AtClock anchors minutes-since-midnight to the given date. Values of 1440 and
// above roll into the following day, which is how the night window end (05:00
// next day = 1740) is expressed.
func AtClock(date time.Time, minutesOfDay int) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutesOfDay) * time.Minute)
}

// MinutesBetween returns the whole minutes from a to b, clamped at zero when b
// is not after a.
func MinutesBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// OverlapMinutes returns the length in minutes of the intersection of
// [aStart, aEnd] and [bStart, bEnd], zero when they do not overlap.
func OverlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	return MinutesBetween(start, end)
}

// FormatMinutes renders a minute count as "H:MM" for report columns, with "-"
// standing in for zero the way the ledger screens print it.
func FormatMinutes(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
