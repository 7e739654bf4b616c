package validator

import (
	"testing"

	"slotbook/pkg/logger"
	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

func testValidator(t *testing.T) *AvailabilityValidator {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: logger.Text})
	return NewAvailabilityValidator(timefmt.Default(), log)
}

func TestValidateReservation(t *testing.T) {
	v := testValidator(t)

	tests := []struct {
		name      string
		res       *model.Reservation
		wantError bool
	}{
		{
			name: "valid same-day interval",
			res: &model.Reservation{
				RoomID:    "room-1",
				Date:      "2026-03-14",
				StartTime: "14:00",
				EndTime:   "15:00",
			},
		},
		{
			name: "end at midnight rolls forward",
			res: &model.Reservation{
				RoomID:    "room-1",
				Date:      "2026-03-14",
				StartTime: "23:00",
				EndTime:   "00:00",
			},
		},
		{
			name: "missing room",
			res: &model.Reservation{
				Date:      "2026-03-14",
				StartTime: "14:00",
				EndTime:   "15:00",
			},
			wantError: true,
		},
		{
			name: "bad date format",
			res: &model.Reservation{
				RoomID:    "room-1",
				Date:      "14/03/2026",
				StartTime: "14:00",
				EndTime:   "15:00",
			},
			wantError: true,
		},
		{
			name: "bad clock format",
			res: &model.Reservation{
				RoomID:    "room-1",
				Date:      "2026-03-14",
				StartTime: "2pm",
				EndTime:   "15:00",
			},
			wantError: true,
		},
		{
			name: "zero-length interval",
			res: &model.Reservation{
				RoomID:    "room-1",
				Date:      "2026-03-14",
				StartTime: "14:00",
				EndTime:   "14:00",
			},
			wantError: true,
		},
		{
			name: "inverted interval",
			res: &model.Reservation{
				RoomID:    "room-1",
				Date:      "2026-03-14",
				StartTime: "15:00",
				EndTime:   "14:00",
			},
			wantError: true,
		},
		{
			name: "unknown source",
			res: &model.Reservation{
				RoomID:    "room-1",
				Date:      "2026-03-14",
				StartTime: "14:00",
				EndTime:   "15:00",
				Source:    "import",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateReservation(tt.res)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateReservation() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateSlotQueryGranularity(t *testing.T) {
	v := testValidator(t)

	tests := []struct {
		name        string
		granularity int
		wantError   bool
	}{
		{"zero falls back to default", 0, false},
		{"divides the day", 30, false},
		{"quarter hours", 15, false},
		{"whole day", 1440, false},
		{"does not divide the day", 7, true},
		{"negative", -30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &model.SlotQuery{RoomID: "room-1", Date: "2026-03-14", Granularity: tt.granularity}
			err := v.ValidateSlotQuery(q)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateSlotQuery() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateEndTimesQueryStart(t *testing.T) {
	v := testValidator(t)

	base := model.SlotQuery{RoomID: "room-1", Date: "2026-03-14"}

	if err := v.ValidateEndTimesQuery(&model.EndTimesQuery{SlotQuery: base, Start: "13:30"}); err != nil {
		t.Errorf("expected a clock start to pass, got %v", err)
	}
	if err := v.ValidateEndTimesQuery(&model.EndTimesQuery{SlotQuery: base, Start: "Now"}); err != nil {
		t.Errorf("expected the Now marker to pass, got %v", err)
	}
	if err := v.ValidateEndTimesQuery(&model.EndTimesQuery{SlotQuery: base, Start: "later"}); err == nil {
		t.Error("expected an arbitrary start string to fail")
	}
	if err := v.ValidateEndTimesQuery(&model.EndTimesQuery{SlotQuery: base}); err == nil {
		t.Error("expected a missing start to fail")
	}

	min, max := 4.0, 2.0
	err := v.ValidateEndTimesQuery(&model.EndTimesQuery{
		SlotQuery:     base,
		Start:         "13:30",
		MinUsageHours: &min,
		MaxUsageHours: &max,
	})
	if err == nil {
		t.Error("expected inverted usage bounds to fail")
	}
}
