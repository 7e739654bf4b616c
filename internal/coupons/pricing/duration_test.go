package pricing

import (
	"testing"
	"time"

	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

func datetime(t *testing.T, date, clock string) time.Time {
	t.Helper()
	ts, err := timefmt.Default().ParseAt(date, clock)
	if err != nil {
		t.Fatalf("failed to parse %s %s: %v", date, clock, err)
	}
	return ts
}

func TestWithinDurationSameDay(t *testing.T) {
	f := timefmt.Default()
	window := &model.CouponDuration{Start: "09:00", End: "18:00"}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"inside", "10:00", "12:00", true},
		{"on the boundaries", "09:00", "18:00", true},
		{"starts too early", "08:00", "12:00", false},
		{"ends too late", "10:00", "19:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := datetime(t, "2026-03-14", tt.start)
			end := datetime(t, "2026-03-14", tt.end)
			if got := WithinDuration(start, end, window, f); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWithinDurationCrossDayAllDayWindow(t *testing.T) {
	f := timefmt.Default()
	window := &model.CouponDuration{Start: "00:00", End: "24:00"}

	start := datetime(t, "2026-03-14", "23:00")
	end := datetime(t, "2026-03-15", "01:00")
	if !WithinDuration(start, end, window, f) {
		t.Errorf("expected an all-day window to admit a booking over midnight")
	}
}

func TestWithinDurationCrossDayPartialWindow(t *testing.T) {
	f := timefmt.Default()
	window := &model.CouponDuration{Start: "22:00", End: "23:00"}

	// both ends sit inside their day's window, but the booking crosses
	// the uncovered stretch between the windows
	start := datetime(t, "2026-03-14", "22:30")
	end := datetime(t, "2026-03-15", "22:30")
	if WithinDuration(start, end, window, f) {
		t.Errorf("expected a partial window to reject a booking spanning the gap")
	}
}

func TestWithinDurationMalformed(t *testing.T) {
	f := timefmt.Default()
	start := datetime(t, "2026-03-14", "10:00")
	end := datetime(t, "2026-03-14", "12:00")

	if WithinDuration(start, end, nil, f) {
		t.Errorf("expected a missing window to report false")
	}
	if WithinDuration(start, end, &model.CouponDuration{Start: "09:00"}, f) {
		t.Errorf("expected a window without an end to report false")
	}
	if WithinDuration(time.Time{}, end, &model.CouponDuration{Start: "09:00", End: "18:00"}, f) {
		t.Errorf("expected a zero start to report false")
	}
}
