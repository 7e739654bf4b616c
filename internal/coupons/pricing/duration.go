package pricing

import (
	"time"

	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

// WithinDuration reports whether a booking fits the coupon's daily time
// window. A same-day booking must start and end inside the window; a
// booking running into the next day must start inside today's window, end
// inside tomorrow's, and the two windows must not leave a gap in between
// (unless the window covers the whole day). Malformed input, including a
// window with a missing boundary, reports false rather than failing.
func WithinDuration(start, end time.Time, d *model.CouponDuration, f timefmt.Formats) bool {
	if start.IsZero() || end.IsZero() || d == nil || d.Start == "" || d.End == "" {
		return false
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	windowStart, err := clockOn(day, d.Start, f)
	if err != nil {
		return false
	}
	windowEnd, err := clockOn(day, d.End, f)
	if err != nil {
		return false
	}

	if !endDay.After(day) {
		return between(start, windowStart, windowEnd) && between(end, windowStart, windowEnd)
	}

	nextWindowStart := windowStart.AddDate(0, 0, 1)
	nextWindowEnd := windowEnd.AddDate(0, 0, 1)

	startsToday := between(start, windowStart, windowEnd)
	endsNextDay := between(end, nextWindowStart, nextWindowEnd)

	allDay := d.Start == "00:00" && d.End == "24:00"
	gap := !allDay && !start.After(windowEnd) && !end.Before(nextWindowStart)

	return startsToday && endsNextDay && !gap
}

// clockOn anchors a clock string on a calendar day. "24:00" denotes the
// end of the day.
func clockOn(day time.Time, clock string, f timefmt.Formats) (time.Time, error) {
	if clock == "24:00" {
		return day.AddDate(0, 0, 1), nil
	}
	t, err := f.ParseAt(f.FormatDate(day), clock)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func between(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
