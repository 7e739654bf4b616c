package engine

import (
	"testing"

	"slotbook/pkg/model"
)

func endValues(opts []EndOption) []string {
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Disabled {
			continue
		}
		values = append(values, o.Value)
	}
	return values
}

func TestEndOptionsBlockedByReservation(t *testing.T) {
	opt := testOptions()
	date := "2026-03-14"
	now := clockAt(t, date, "10:00")
	reserved := []model.Reservation{reservation(date, "14:00", "15:00")}

	slots := GenerateSlots(date, opt.GranularityMin, reserved, now, opt.Formats)
	opts := EndOptions(slots, date, "13:30", reserved, now, opt)

	if len(opts) == 0 || !opts[0].Disabled || opts[0].Label != opt.Labels.SelectEndTime {
		t.Fatalf("expected a disabled placeholder first, got %+v", opts)
	}

	values := endValues(opts)
	if len(values) != 1 || values[0] != "14:00" {
		t.Fatalf("expected the walk to stop at the reservation with 14:00 as the only end, got %v", values)
	}
}

func TestEndOptionsCrossDayLimitedByNextDayReservation(t *testing.T) {
	opt := testOptions()
	date := "2026-03-14"
	now := clockAt(t, date, "10:00")
	reserved := []model.Reservation{reservation("2026-03-15", "03:10", "05:00")}

	slots := GenerateSlots(date, opt.GranularityMin, nil, now, opt.Formats)
	opts := EndOptions(slots, date, "22:00", reserved, now, opt)

	values := endValues(opts)
	// 22:30 through 00:00 same day, then 00:30 through 03:00 next day
	if len(values) != 10 {
		t.Fatalf("expected 10 end candidates, got %d: %v", len(values), values)
	}
	if values[len(values)-1] != "03:00" {
		t.Errorf("expected the last candidate aligned down to the next-day reservation, got %s", values[len(values)-1])
	}

	var midnight, lastCross EndOption
	for _, o := range opts {
		if o.Value == "00:00" {
			midnight = o
		}
		if o.Value == "03:00" {
			lastCross = o
		}
	}
	if !midnight.NextDay {
		t.Errorf("expected the midnight end tagged as next day")
	}
	if !lastCross.NextDay || lastCross.Slot.Date != "2026-03-15" {
		t.Errorf("expected cross-day candidates anchored on the next date, got %+v", lastCross)
	}
	if lastCross.Label != "03:00 ("+opt.Labels.NextDayHint+")" {
		t.Errorf("unexpected cross-day label %q", lastCross.Label)
	}
}

func TestEndOptionsCrossDayCappedByMaxUsage(t *testing.T) {
	opt := testOptions()
	opt.MaxUsageHours = 2
	date := "2026-03-14"
	now := clockAt(t, date, "10:00")

	slots := GenerateSlots(date, opt.GranularityMin, nil, now, opt.Formats)
	opts := EndOptions(slots, date, "23:00", nil, now, opt)

	values := endValues(opts)
	want := []string{"23:30", "00:00", "00:30", "01:00"}
	if len(values) != len(want) {
		t.Fatalf("expected %v, got %v", want, values)
	}
	for i, v := range want {
		if values[i] != v {
			t.Fatalf("expected %v, got %v", want, values)
		}
	}
}

func TestEndOptionsDurationWindow(t *testing.T) {
	opt := testOptions()
	opt.MinUsageHours = 1
	opt.MaxUsageHours = 2
	date := "2026-03-14"
	now := clockAt(t, date, "08:00")

	slots := GenerateSlots(date, opt.GranularityMin, nil, now, opt.Formats)
	opts := EndOptions(slots, date, "13:00", nil, now, opt)

	values := endValues(opts)
	want := []string{"14:00", "14:30", "15:00"}
	if len(values) != len(want) {
		t.Fatalf("expected %v, got %v", want, values)
	}
	for i, v := range want {
		if values[i] != v {
			t.Fatalf("expected %v, got %v", want, values)
		}
	}
}

func TestEndOptionsNowUsesLiveReference(t *testing.T) {
	opt := testOptions()
	opt.MinUsageHours = 0.5
	opt.MaxUsageHours = 1
	opt.CrossDay = false
	date := "2026-03-14"
	now := clockAt(t, date, "13:45")

	slots := GenerateSlots(date, opt.GranularityMin, nil, now, opt.Formats)
	opts := EndOptions(slots, date, NowValue, nil, now, opt)

	// candidates start from the snapped 13:30 slot, but the window is
	// measured from 13:45: 14:00 is only 15 minutes out
	values := endValues(opts)
	want := []string{"14:30"}
	if len(values) != len(want) || values[0] != want[0] {
		t.Fatalf("expected %v, got %v", want, values)
	}
}

func TestEndOptionsPastDate(t *testing.T) {
	opt := testOptions()
	date := "2026-03-14"
	now := clockAt(t, "2026-03-20", "10:00")

	slots := GenerateSlots(date, opt.GranularityMin, nil, now, opt.Formats)
	if opts := EndOptions(slots, date, "13:00", nil, now, opt); opts != nil {
		t.Errorf("expected no end options for a day that is over, got %v", endValues(opts))
	}
}

func TestEndOptionsNowOnOtherDate(t *testing.T) {
	opt := testOptions()
	now := clockAt(t, "2026-03-14", "12:00")

	// the live-clock marker is only meaningful on today's date
	for _, date := range []string{"2026-03-15", "2026-03-13"} {
		slots := GenerateSlots(date, opt.GranularityMin, nil, now, opt.Formats)
		if opts := EndOptions(slots, date, NowValue, nil, now, opt); opts != nil {
			t.Errorf("expected no end options for the now marker on %s, got %v", date, endValues(opts))
		}
	}
}

func TestEndOptionsInvalidInput(t *testing.T) {
	opt := testOptions()
	now := clockAt(t, "2026-03-14", "10:00")
	slots := GenerateSlots("2026-03-14", opt.GranularityMin, nil, now, opt.Formats)

	if opts := EndOptions(slots, "2026-03-14", "", nil, now, opt); opts != nil {
		t.Errorf("expected nil options without a start selection")
	}
	if opts := EndOptions(slots, "bogus", "13:00", nil, now, opt); opts != nil {
		t.Errorf("expected nil options for an unparseable date")
	}
	if opts := EndOptions(slots, "2026-03-14", "bogus", nil, now, opt); opts != nil {
		t.Errorf("expected nil options for an unparseable start")
	}
}
