package timefmt

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultDateTokens = "YYYY-MM-DD"
	DefaultTimeTokens = "HH:mm"
)

// Formats holds the Go reference layouts for the calendar-date and
// clock-time strings exchanged with the booking backend.
type Formats struct {
	Date string
	Time string
}

func Default() Formats {
	return Formats{Date: "2006-01-02", Time: "15:04"}
}

// tokenReplacer translates moment-style format tokens into Go reference
// layouts. Only the tokens that appear in backend payloads are supported.
var tokenReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// FromTokens builds Formats from moment-style tokens, e.g. "YYYY-MM-DD"
// and "HH:mm".
func FromTokens(dateTokens, timeTokens string) (Formats, error) {
	f := Formats{
		Date: tokenReplacer.Replace(dateTokens),
		Time: tokenReplacer.Replace(timeTokens),
	}
	probe := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if _, err := time.Parse(f.Date, probe.Format(f.Date)); err != nil {
		return Formats{}, fmt.Errorf("unsupported date format %q: %w", dateTokens, err)
	}
	if _, err := time.Parse(f.Time, probe.Format(f.Time)); err != nil {
		return Formats{}, fmt.Errorf("unsupported time format %q: %w", timeTokens, err)
	}
	return f, nil
}

func (f Formats) ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(f.Date, date, time.Local)
}

// ParseClock parses a bare clock string.
func (f Formats) ParseClock(clock string) (time.Time, error) {
	return time.ParseInLocation(f.Time, clock, time.Local)
}

// ParseAt parses a clock time on the given calendar date.
func (f Formats) ParseAt(date, clock string) (time.Time, error) {
	return time.ParseInLocation(f.Date+" "+f.Time, date+" "+clock, time.Local)
}

func (f Formats) FormatDate(t time.Time) string {
	return t.Format(f.Date)
}

func (f Formats) FormatClock(t time.Time) string {
	return t.Format(f.Time)
}

// RollMidnight applies the midnight-rollover rule: an interval end that
// parses as 00:00 and does not lie after its start denotes midnight of the
// following day. Both reservation and candidate ends go through this before
// any comparison.
func RollMidnight(start, end time.Time) time.Time {
	if !end.After(start) && IsMidnight(end) {
		return end.AddDate(0, 0, 1)
	}
	return end
}

func IsMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// SnapDown aligns t to the previous slot boundary for the given granularity,
// zeroing seconds and below.
func SnapDown(t time.Time, granularityMin int) time.Time {
	if granularityMin <= 0 {
		return t.Truncate(time.Minute)
	}
	rem := t.Minute() % granularityMin
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()-rem, 0, 0, t.Location())
}

// Hours returns the elapsed time from ref to end as fractional hours with
// minute resolution, without rounding.
func Hours(ref, end time.Time) float64 {
	return float64(int(end.Sub(ref)/time.Minute)) / 60
}
