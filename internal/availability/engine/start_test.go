package engine

import (
	"testing"

	"slotbook/pkg/model"
)

func startValues(opts []StartOption) map[string]bool {
	values := make(map[string]bool, len(opts))
	for _, o := range opts {
		values[o.Value] = true
	}
	return values
}

func TestStartOptionsExcludesReservedAndPast(t *testing.T) {
	opt := testOptions()
	opt.AllowNow = false
	date := "2026-03-14"
	now := clockAt(t, date, "13:45")
	reserved := []model.Reservation{reservation(date, "14:00", "15:00")}

	slots := GenerateSlots(date, opt.GranularityMin, reserved, now, opt.Formats)
	opts := StartOptions(slots, date, reserved, now, opt)

	if len(opts) == 0 || !opts[0].Disabled || opts[0].Label != opt.Labels.SelectStartTime {
		t.Fatalf("expected a disabled placeholder first, got %+v", opts)
	}

	values := startValues(opts)
	for _, v := range []string{"13:30", "14:00", "14:30"} {
		if values[v] {
			t.Errorf("expected %s to be excluded from start options", v)
		}
	}
	if !values["15:00"] || !values["23:30"] {
		t.Errorf("expected later free slots to remain selectable")
	}
}

func TestStartOptionsNowInjection(t *testing.T) {
	opt := testOptions()
	date := "2026-03-14"
	now := clockAt(t, date, "13:45")
	reserved := []model.Reservation{reservation(date, "14:00", "15:00")}

	slots := GenerateSlots(date, opt.GranularityMin, reserved, now, opt.Formats)
	opts := StartOptions(slots, date, reserved, now, opt)

	if len(opts) < 2 {
		t.Fatalf("expected placeholder plus options, got %d", len(opts))
	}
	nowOpt := opts[1]
	if !nowOpt.IsNow || nowOpt.Value != NowValue {
		t.Fatalf("expected the now option first after the placeholder, got %+v", nowOpt)
	}
	if nowOpt.Label != opt.Labels.Now {
		t.Errorf("expected now option labeled %q, got %q", opt.Labels.Now, nowOpt.Label)
	}
	if nowOpt.Slot.SlotStart != "13:30" || nowOpt.Slot.SlotEnd != "14:00" {
		t.Errorf("expected now option anchored on the 13:30-14:00 slot, got %s-%s", nowOpt.Slot.SlotStart, nowOpt.Slot.SlotEnd)
	}
	if nowOpt.FullString != "13:45" {
		t.Errorf("expected full clock string 13:45, got %s", nowOpt.FullString)
	}
}

func TestStartOptionsNowSuppressedOnSlotBoundary(t *testing.T) {
	opt := testOptions()
	date := "2026-03-14"
	now := clockAt(t, date, "15:00")

	slots := GenerateSlots(date, opt.GranularityMin, nil, now, opt.Formats)
	opts := StartOptions(slots, date, nil, now, opt)

	for _, o := range opts {
		if o.IsNow {
			t.Fatalf("expected no now option when the current time sits on a slot boundary")
		}
	}
	if !startValues(opts)["15:00"] {
		t.Errorf("expected the 15:00 slot itself to remain selectable")
	}
}

func TestStartOptionsNowSuppressedByReservation(t *testing.T) {
	opt := testOptions()
	date := "2026-03-14"
	now := clockAt(t, date, "14:15")
	reserved := []model.Reservation{reservation(date, "14:00", "15:00")}

	slots := GenerateSlots(date, opt.GranularityMin, reserved, now, opt.Formats)
	opts := StartOptions(slots, date, reserved, now, opt)

	for _, o := range opts {
		if o.IsNow {
			t.Fatalf("expected no now option while the current slot is reserved")
		}
	}
}

func TestStartOptionsPastDate(t *testing.T) {
	opt := testOptions()
	now := clockAt(t, "2026-03-14", "10:00")

	slots := GenerateSlots("2026-03-13", opt.GranularityMin, nil, now, opt.Formats)
	if opts := StartOptions(slots, "2026-03-13", nil, now, opt); opts != nil {
		t.Errorf("expected no start options for a past date, got %d", len(opts))
	}
	if opts := StartOptions(nil, "bogus", nil, now, opt); opts != nil {
		t.Errorf("expected no start options for an unparseable date, got %d", len(opts))
	}
}

func TestStartOptionsFutureDate(t *testing.T) {
	opt := testOptions()
	now := clockAt(t, "2026-03-14", "22:00")

	slots := GenerateSlots("2026-03-15", opt.GranularityMin, nil, now, opt.Formats)
	opts := StartOptions(slots, "2026-03-15", nil, now, opt)

	// placeholder plus every slot of the day, no now option on a future date
	if len(opts) != 49 {
		t.Fatalf("expected 49 options, got %d", len(opts))
	}
	for _, o := range opts {
		if o.IsNow {
			t.Errorf("expected no now option on a future date")
		}
	}
}
