package pricing

// Booking modes a coupon can be applied in.
const (
	ModeSeat  = "seat"
	ModeEvent = "event"
	ModeRoom  = "room"
)

// Rejection tags surfaced to callers instead of errors. The first five
// come from the coupon lookup itself; the rest from applying the coupon
// to a concrete booking.
const (
	TagWrong   = "wrong"
	TagUsed    = "used"
	TagNoPhone = "nophone"
	TagLimited = "limited"
	TagBlocked = "blocked"

	TagNotAvailable   = "not-available"
	TagModeRestricted = "not-available-at-seat-or-event"
)

// AllowedInMode reports whether a coupon kind applies to a booking mode.
// Hour reductions need a metered room booking behind them.
func AllowedInMode(t Type, mode string) bool {
	return !(t == TypeReduceHours && (mode == ModeSeat || mode == ModeEvent))
}
