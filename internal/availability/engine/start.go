package engine

import (
	"time"

	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

// StartOptions derives the selectable start times for the target date. The
// list opens with a disabled placeholder, followed by the synthetic "now"
// option when applicable, then every free slot in day order. A date in the
// past or an unparseable date yields nil.
func StartOptions(slots []TimeSlot, date string, reserved []model.Reservation, now time.Time, opt Options) []StartOption {
	day, err := opt.Formats.ParseDate(date)
	if err != nil {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil
	}
	sameDay := day.Equal(today)

	regular := make([]StartOption, 0, len(slots))
	for _, s := range slots {
		if s.IsOverlap {
			continue
		}
		if sameDay {
			// today only offers starts that have not passed yet
			slotStart, err := opt.Formats.ParseAt(s.Date, s.SlotStart)
			if err != nil || slotStart.Before(now) {
				continue
			}
		}
		regular = append(regular, StartOption{
			Label: s.SlotStart,
			Value: s.SlotStart,
			Slot:  s,
		})
	}

	out := make([]StartOption, 0, len(regular)+2)
	out = append(out, StartOption{Label: opt.Labels.SelectStartTime, Disabled: true})

	if opt.AllowNow && sameDay {
		if nowOpt, ok := nowOption(date, reserved, now, regular, opt); ok {
			out = append(out, nowOpt)
		}
	}

	return append(out, regular...)
}

// nowOption builds the synthetic "book from right now" option, anchored on
// the slot boundary at or before the current time. It is withheld when that
// slot collides with a reservation or when its start duplicates a regular
// option.
func nowOption(date string, reserved []model.Reservation, now time.Time, regular []StartOption, opt Options) (StartOption, bool) {
	snapped := timefmt.SnapDown(now, opt.GranularityMin)
	slotEnd := snapped.Add(time.Duration(opt.GranularityMin) * time.Minute)

	slot := TimeSlot{
		Date:      date,
		SlotStart: opt.Formats.FormatClock(snapped),
		SlotEnd:   opt.Formats.FormatClock(slotEnd),
	}

	for _, o := range regular {
		if o.Value == slot.SlotStart {
			return StartOption{}, false
		}
	}
	if overlapsAny(reserved, Interval{Date: date, Start: slot.SlotStart, End: slot.SlotEnd}, opt.Formats) {
		return StartOption{}, false
	}

	return StartOption{
		Label:      opt.Labels.Now,
		Value:      NowValue,
		Slot:       slot,
		IsNow:      true,
		FullString: opt.Formats.FormatClock(now),
	}, true
}
