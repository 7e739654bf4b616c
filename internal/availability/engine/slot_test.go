package engine

import (
	"testing"
	"time"

	"slotbook/pkg/locale"
	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

func testOptions() Options {
	return Options{
		Formats:        timefmt.Default(),
		Labels:         locale.For("en"),
		GranularityMin: 30,
		AllowNow:       true,
		MinUsageHours:  0,
		MaxUsageHours:  24,
		CrossDay:       true,
	}
}

func reservation(date, start, end string) model.Reservation {
	return model.Reservation{
		RoomID:    "room-1",
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

func clockAt(t *testing.T, date, clock string) time.Time {
	t.Helper()
	ts, err := timefmt.Default().ParseAt(date, clock)
	if err != nil {
		t.Fatalf("failed to parse %s %s: %v", date, clock, err)
	}
	return ts
}

func TestGenerateSlotsContiguous(t *testing.T) {
	opt := testOptions()
	now := clockAt(t, "2026-03-14", "08:00")

	slots := GenerateSlots("2026-03-15", 30, nil, now, opt.Formats)
	if len(slots) != 48 {
		t.Fatalf("expected 48 slots at 30 minute granularity, got %d", len(slots))
	}
	if slots[0].SlotStart != "00:00" || slots[0].SlotEnd != "00:30" {
		t.Errorf("unexpected first slot %s-%s", slots[0].SlotStart, slots[0].SlotEnd)
	}
	if slots[47].SlotStart != "23:30" || slots[47].SlotEnd != "00:00" {
		t.Errorf("unexpected last slot %s-%s", slots[47].SlotStart, slots[47].SlotEnd)
	}
	for i := 0; i < len(slots)-1; i++ {
		if slots[i].SlotEnd != slots[i+1].SlotStart {
			t.Fatalf("slots not contiguous at index %d: %s != %s", i, slots[i].SlotEnd, slots[i+1].SlotStart)
		}
	}
}

func TestGenerateSlotsFlags(t *testing.T) {
	opt := testOptions()
	date := "2026-03-14"
	now := clockAt(t, date, "13:45")
	reserved := []model.Reservation{reservation(date, "14:00", "15:00")}

	slots := GenerateSlots(date, 30, reserved, now, opt.Formats)

	flagged := map[string]TimeSlot{}
	for _, s := range slots {
		flagged[s.SlotStart] = s
	}

	if !flagged["14:00"].IsOverlap || !flagged["14:30"].IsOverlap {
		t.Errorf("expected 14:00 and 14:30 slots flagged as overlapping")
	}
	if flagged["13:30"].IsOverlap || flagged["15:00"].IsOverlap {
		t.Errorf("expected slots touching the reservation boundary to stay free")
	}
	if !flagged["13:00"].IsPast {
		t.Errorf("expected slot ended before the current time to be past")
	}
	if flagged["13:30"].IsPast {
		t.Errorf("expected slot still running at the current time to not be past")
	}
}

func TestGenerateSlotsInvalidInput(t *testing.T) {
	opt := testOptions()
	now := time.Now()

	if slots := GenerateSlots("not-a-date", 30, nil, now, opt.Formats); slots != nil {
		t.Errorf("expected nil slots for unparseable date, got %d", len(slots))
	}
	if slots := GenerateSlots("2026-03-14", 0, nil, now, opt.Formats); slots != nil {
		t.Errorf("expected nil slots for zero granularity, got %d", len(slots))
	}
}

func TestAvailableSlots(t *testing.T) {
	slots := []TimeSlot{
		{SlotStart: "09:00", SlotEnd: "09:30"},
		{SlotStart: "09:30", SlotEnd: "10:00", IsOverlap: true},
		{SlotStart: "10:00", SlotEnd: "10:30", IsPast: true},
		{SlotStart: "10:30", SlotEnd: "11:00"},
	}

	free := AvailableSlots(slots)
	if len(free) != 2 {
		t.Fatalf("expected 2 available slots, got %d", len(free))
	}
	if free[0].SlotStart != "09:00" || free[1].SlotStart != "10:30" {
		t.Errorf("unexpected available slots %s, %s", free[0].SlotStart, free[1].SlotStart)
	}
}
