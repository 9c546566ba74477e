package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format accepted for range queries
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used for shift boundaries
	ClockLayout = "15:04:05"

	secondsPerDay = 24 * 3600
)

// ParseClock parses a HH:MM:SS time-of-day leniently.
// Missing or non-numeric parts count as zero.
func ParseClock(hms string) (h, m, s int) {
	parts := strings.SplitN(strings.TrimSpace(hms), ":", 3)
	vals := [3]int{}
	for i, p := range parts {
		vals[i] = leadingInt(p)
	}
	return vals[0], vals[1], vals[2]
}

// leadingInt returns the integer value of the leading digits of s, or 0
func leadingInt(s string) int {
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func clockSeconds(hms string) int {
	h, m, s := ParseClock(hms)
	return h*3600 + m*60 + s
}

// ShiftDurationSeconds returns the seconds elapsed from start to end.
// A shift whose end is not after its start crosses midnight.
func ShiftDurationSeconds(start, end string) int {
	s := clockSeconds(start)
	e := clockSeconds(end)
	if e <= s {
		e += secondsPerDay
	}
	return e - s
}

// OverlapSeconds returns the whole seconds of [segStart, segEnd) that fall inside
// [rangeStart, rangeEnd]. Invalid segments and zero-valued bounds yield 0.
func OverlapSeconds(segStart, segEnd, rangeStart, rangeEnd time.Time) int64 {
	if segStart.IsZero() || segEnd.IsZero() || rangeStart.IsZero() || rangeEnd.IsZero() {
		return 0
	}
	if !segEnd.After(segStart) {
		return 0
	}
	lo := clampTime(segStart, rangeStart, rangeEnd)
	hi := clampTime(segEnd, rangeStart, rangeEnd)
	if !hi.After(lo) {
		return 0
	}
	return int64(hi.Sub(lo) / time.Second)
}

// clampTime mirrors max(lo, min(hi, t))
func clampTime(t, lo, hi time.Time) time.Time {
	if t.After(hi) {
		t = hi
	}
	if t.Before(lo) {
		t = lo
	}
	return t
}

// CapLimit normalizes a requested row limit to [1, max].
// Non-finite or non-positive requests fall back to def.
func CapLimit(value float64, def, max int) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return def
	}
	n := math.Floor(value)
	if n <= 0 {
		return def
	}
	if n > float64(max) {
		return max
	}
	return int(n)
}

// SecondsToHMS formats seconds as zero-padded HH:MM:SS
func SecondsToHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(date))
}

// DayBounds returns 00:00:00 and 23:59:59 of the given date in loc
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	y, m, dd := d.Date()
	return d, time.Date(y, m, dd, 23, 59, 59, 0, loc), nil
}

// StartOfDay returns local midnight of the day containing t
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59 of the day containing t
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}

// ClockOn returns the instant at which the time-of-day hms occurs on day's date
func ClockOn(day time.Time, hms string, loc *time.Location) time.Time {
	y, mo, d := day.In(loc).Date()
	h, m, s := ParseClock(hms)
	return time.Date(y, mo, d, h, m, s, 0, loc)
}
