// Package engine implements the time-slot availability computations: slot
// generation, overlap checking and the start/end option resolvers. All
// functions are pure; callers pass the current time and formats explicitly
// and rebuild derived collections on every input change.
package engine

import (
	"time"

	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

// TimeSlot is one granularity-sized interval of the target date. The clock
// strings stay in the configured wire format; Date plus SlotStart/SlotEnd
// identify the interval, with a SlotEnd of midnight denoting the end of the
// day.
type TimeSlot struct {
	Date      string `json:"date"`
	SlotStart string `json:"slot_start"`
	SlotEnd   string `json:"slot_end"`
	IsOverlap bool   `json:"is_overlap"`
	IsPast    bool   `json:"is_past"`
}

// GenerateSlots partitions the target date into contiguous slots of
// granularity minutes from 00:00 to 24:00 and flags each against the
// reservations and the current time. An unparseable date yields nil.
//
// Slots are always rebuilt from scratch; a day holds at most 96 slots at
// 15-minute granularity, so regeneration is cheaper than patching.
func GenerateSlots(date string, granularityMin int, reserved []model.Reservation, now time.Time, f timefmt.Formats) []TimeSlot {
	if granularityMin <= 0 {
		return nil
	}
	dayStart, err := f.ParseDate(date)
	if err != nil {
		return nil
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	step := time.Duration(granularityMin) * time.Minute
	slots := make([]TimeSlot, 0, int(dayEnd.Sub(dayStart)/step))

	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(step) {
		end := cur.Add(step)
		slot := TimeSlot{
			Date:      date,
			SlotStart: f.FormatClock(cur),
			SlotEnd:   f.FormatClock(end),
		}

		cand := Interval{Date: date, Start: slot.SlotStart, End: slot.SlotEnd}
		for _, res := range reserved {
			if Overlaps(res, cand, f) {
				slot.IsOverlap = true
				break
			}
		}

		// end is already rolled past midnight by construction
		slot.IsPast = end.Before(now)

		slots = append(slots, slot)
	}

	return slots
}

// AvailableSlots filters out slots that are reserved or already over.
func AvailableSlots(slots []TimeSlot) []TimeSlot {
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if !s.IsOverlap && !s.IsPast {
			out = append(out, s)
		}
	}
	return out
}
