package engine

import (
	"fmt"
	"time"

	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

// endCandidate pairs a presentation option with the absolute instant it
// terminates at, so the duration window can be applied after generation.
type endCandidate struct {
	option EndOption
	at     time.Time
}

// EndOptions derives the selectable end times for a chosen start. Same-day
// candidates are the end boundaries of the free slots from the effective
// start onward; the walk stops at the first reserved slot, since a single
// contiguous booking cannot reach past it. When the day runs out unblocked
// and cross-day extension is enabled, next-day boundaries are generated up
// to the earliest next-day reservation or, absent one, midnight of the day
// after next. Every candidate must land within the usage-duration window,
// measured from the live current time when the start is the "now" marker
// and from the effective start otherwise. The list opens with a disabled
// placeholder; a missing start, an unparseable date or a date already in
// the past yields nil, and the "now" marker only resolves on today's date.
func EndOptions(slots []TimeSlot, date, start string, reserved []model.Reservation, now time.Time, opt Options) []EndOption {
	if start == "" {
		return nil
	}
	day, err := opt.Formats.ParseDate(date)
	if err != nil {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil
	}

	var effStart, ref time.Time
	if start == NowValue {
		if !day.Equal(today) {
			return nil
		}
		effStart = timefmt.SnapDown(now, opt.GranularityMin)
		ref = now
	} else {
		effStart, err = opt.Formats.ParseAt(date, start)
		if err != nil {
			return nil
		}
		ref = effStart
	}

	cands, blocked := sameDayCandidates(slots, effStart, opt)
	if opt.CrossDay && !blocked {
		cands = append(cands, crossDayCandidates(day, effStart, reserved, opt)...)
	}

	out := make([]EndOption, 0, len(cands)+1)
	out = append(out, EndOption{Label: opt.Labels.SelectEndTime, Disabled: true})
	for _, c := range cands {
		h := timefmt.Hours(ref, c.at)
		if h < opt.MinUsageHours || h > opt.MaxUsageHours {
			continue
		}
		out = append(out, c.option)
	}
	return out
}

func sameDayCandidates(slots []TimeSlot, effStart time.Time, opt Options) ([]endCandidate, bool) {
	var cands []endCandidate
	for _, s := range slots {
		slotStart, err := opt.Formats.ParseAt(s.Date, s.SlotStart)
		if err != nil || slotStart.Before(effStart) {
			continue
		}
		if s.IsOverlap {
			return cands, true
		}
		slotEnd, err := opt.Formats.ParseAt(s.Date, s.SlotEnd)
		if err != nil {
			continue
		}
		slotEnd = timefmt.RollMidnight(slotStart, slotEnd)

		option := EndOption{Label: s.SlotEnd, Value: s.SlotEnd, Slot: s}
		if timefmt.IsMidnight(slotEnd) {
			option.Label = nextDayLabel(s.SlotEnd, opt)
			option.NextDay = true
		}
		cands = append(cands, endCandidate{option: option, at: slotEnd})
	}
	return cands, false
}

// crossDayCandidates extends the end boundaries into the following day. The
// hard limit is the earliest next-day reservation start aligned down to slot
// granularity, or midnight of the day after next when that day is free,
// further capped by the maximum usage duration from the effective start.
func crossDayCandidates(day, effStart time.Time, reserved []model.Reservation, opt Options) []endCandidate {
	nextMidnight := day.AddDate(0, 0, 1)
	nextDate := opt.Formats.FormatDate(nextMidnight)

	limit := nextMidnight.AddDate(0, 0, 1)
	for _, res := range reserved {
		if res.Date != nextDate {
			continue
		}
		resStart, err := opt.Formats.ParseAt(res.Date, res.StartTime)
		if err != nil {
			continue
		}
		resStart = timefmt.SnapDown(resStart, opt.GranularityMin)
		if resStart.Before(limit) {
			limit = resStart
		}
	}
	if maxEnd := effStart.Add(time.Duration(opt.MaxUsageHours * float64(time.Hour))); maxEnd.Before(limit) {
		limit = maxEnd
	}

	step := time.Duration(opt.GranularityMin) * time.Minute
	var cands []endCandidate
	for end := nextMidnight.Add(step); !end.After(limit); end = end.Add(step) {
		slot := TimeSlot{
			Date:      nextDate,
			SlotStart: opt.Formats.FormatClock(end.Add(-step)),
			SlotEnd:   opt.Formats.FormatClock(end),
		}
		cands = append(cands, endCandidate{
			option: EndOption{
				Label:   nextDayLabel(slot.SlotEnd, opt),
				Value:   slot.SlotEnd,
				Slot:    slot,
				NextDay: true,
			},
			at: end,
		})
	}
	return cands
}

func nextDayLabel(clock string, opt Options) string {
	return fmt.Sprintf("%s (%s)", clock, opt.Labels.NextDayHint)
}
