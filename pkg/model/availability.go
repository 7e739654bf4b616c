package model

// SlotQuery asks for one room's slot grid on a calendar day. A zero
// Granularity falls back to the configured default.
type SlotQuery struct {
	RoomID      string `json:"room_id" validate:"required,min=1,max=64"`
	Date        string `json:"date" validate:"required,valid_date"`
	Granularity int    `json:"granularity" validate:"omitempty,divides_day"`
}

// StartTimesQuery asks for the selectable start options. AllowNow overrides
// the configured default when set.
type StartTimesQuery struct {
	SlotQuery
	AllowNow *bool `json:"allow_now"`
}

// EndTimesQuery asks for the selectable end options for a chosen start,
// which is either a clock string or the "Now" marker. The usage-hour bounds
// override the configured defaults when set.
type EndTimesQuery struct {
	SlotQuery
	Start         string   `json:"start" validate:"required,start_value"`
	MinUsageHours *float64 `json:"min_usage_hours" validate:"omitempty,min=0"`
	MaxUsageHours *float64 `json:"max_usage_hours" validate:"omitempty,min=0"`
}
