package engine

import (
	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

// Interval is a candidate booking range on a nominal date, in wire-format
// clock strings.
type Interval struct {
	Date  string
	Start string
	End   string
}

// Overlaps reports whether a reservation intersects the candidate interval.
// Both ranges are anchored on their own nominal dates and get the midnight
// rollover applied independently, so a reservation running into the next
// calendar day compares correctly against same-day and next-day candidates.
// Intervals are half-open: touching endpoints do not overlap.
func Overlaps(res model.Reservation, cand Interval, f timefmt.Formats) bool {
	resStart, err := f.ParseAt(res.Date, res.StartTime)
	if err != nil {
		return false
	}
	resEnd, err := f.ParseAt(res.Date, res.EndTime)
	if err != nil {
		return false
	}
	resEnd = timefmt.RollMidnight(resStart, resEnd)

	candStart, err := f.ParseAt(cand.Date, cand.Start)
	if err != nil {
		return false
	}
	candEnd, err := f.ParseAt(cand.Date, cand.End)
	if err != nil {
		return false
	}
	candEnd = timefmt.RollMidnight(candStart, candEnd)

	return resStart.Before(candEnd) && resEnd.After(candStart)
}

// overlapsAny is the slice form used by the resolvers.
func overlapsAny(reserved []model.Reservation, cand Interval, f timefmt.Formats) bool {
	for _, res := range reserved {
		if Overlaps(res, cand, f) {
			return true
		}
	}
	return false
}
