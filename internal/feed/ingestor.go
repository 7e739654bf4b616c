// Package feed mirrors the booking backend's reservation feed into the
// reservations collection. The backend publishes one event per reservation
// change; the ingestor upserts by the feed identity (room, date, start) so
// replayed messages converge on the same state.
package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"slotbook/internal/availability/repository"
	"slotbook/internal/availability/validator"
	"slotbook/pkg/config"
	"slotbook/pkg/kafka"
	"slotbook/pkg/model"
	"slotbook/pkg/sanitizer"
)

// Event types carried in the feed's event-type header.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
)

type Ingestor struct {
	repo      repository.ReservationRepository
	validator *validator.AvailabilityValidator
	cfg       *config.Config
}

func NewIngestor(
	repo repository.ReservationRepository,
	validator *validator.AvailabilityValidator,
	cfg *config.Config,
) *Ingestor {
	return &Ingestor{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Handle processes one feed message. Malformed payloads are permanent
// failures and go to the DLQ; repository errors stay retryable.
func (i *Ingestor) Handle(ctx context.Context, msg kafka.Message) error {
	var res model.Reservation
	if err := json.Unmarshal(msg.Value, &res); err != nil {
		return fmt.Errorf("%w: undecodable reservation payload: %v", kafka.ErrPermanent, err)
	}

	res.ID = ""
	res.RoomID = sanitizer.NormalizeRoomID(res.RoomID)
	res.Source = model.ReservationSourceFeed

	if err := i.validator.ValidateReservation(&res); err != nil {
		return fmt.Errorf("%w: invalid reservation payload: %v", kafka.ErrPermanent, err)
	}

	switch msg.EventType() {
	case EventReservationCreated, EventReservationUpdated:
		if err := i.repo.Upsert(ctx, &res); err != nil {
			return fmt.Errorf("failed to upsert feed reservation: %w", err)
		}
	case EventReservationCancelled:
		if err := i.repo.DeleteByKey(ctx, res.RoomID, res.Date, res.StartTime); err != nil {
			return fmt.Errorf("failed to remove cancelled reservation: %w", err)
		}
	default:
		i.cfg.Log.Warn("Skipping unrecognized feed event",
			"event_type", msg.EventType(),
			"offset", msg.Offset,
		)
		return nil
	}

	i.cfg.Log.Info("Feed reservation applied",
		"event_type", msg.EventType(),
		"room_id", res.RoomID,
		"date", res.Date,
		"start_time", res.StartTime,
	)
	return nil
}
