package model

import "time"

// Reservation is one already-booked interval as supplied by the booking
// backend. Date and clock strings stay in the configured wire format and are
// only parsed at the engine boundary.
type Reservation struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID    string    `json:"room_id" bson:"room_id" validate:"required,min=1,max=64"`
	Date      string    `json:"date" bson:"date" validate:"required,valid_date"`
	StartTime string    `json:"start_time" bson:"start_time" validate:"required,valid_clock"`
	EndTime   string    `json:"end_time" bson:"end_time" validate:"required,valid_clock"`
	Source    string    `json:"source,omitempty" bson:"source,omitempty" validate:"omitempty,oneof=api feed"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

const (
	ReservationSourceAPI  = "api"
	ReservationSourceFeed = "feed"
)
