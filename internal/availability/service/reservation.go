package service

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"slotbook/internal/availability/engine"
	availabilityerrors "slotbook/internal/availability/errors"
	"slotbook/internal/availability/repository"
	"slotbook/internal/availability/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/kafka"
	"slotbook/pkg/model"
	"slotbook/pkg/sanitizer"
)

// Reservation lifecycle event types on the events topic.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
)

// EventPublisher pushes reservation lifecycle events out. A nil publisher
// disables eventing.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type ReservationService interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	Update(ctx context.Context, id string, res *model.Reservation) error
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo      repository.ReservationRepository
	validator *validator.AvailabilityValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	validator *validator.AvailabilityValidator,
	publisher EventPublisher,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, res *model.Reservation) error {
	res.RoomID = sanitizer.NormalizeRoomID(res.RoomID)
	if res.Source == "" {
		res.Source = model.ReservationSourceAPI
	}
	if err := s.validator.ValidateReservation(res); err != nil {
		return validationError(err)
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, res, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, res); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "room_id", res.RoomID, "date", res.Date, "error", err)
		return err
	}

	s.publishEvent(ctx, EventReservationCreated, res)

	s.cfg.Log.Info("Reservation created successfully",
		"id", res.ID,
		"room_id", res.RoomID,
		"date", res.Date,
		"start_time", res.StartTime,
	)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, availabilityerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return res, nil
}

func (s *reservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	var count int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, count, nil
}

func (s *reservationService) Update(ctx context.Context, id string, res *model.Reservation) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res.RoomID = sanitizer.NormalizeRoomID(res.RoomID)
	if res.Source == "" {
		res.Source = model.ReservationSourceAPI
	}
	if err := s.validator.ValidateReservation(res); err != nil {
		return validationError(err)
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, res, id); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, res); err != nil {
			if errors.Is(err, availabilityerrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Reservation", id)
			}
			if errors.Is(err, availabilityerrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid reservation ID format")
			}
			return apperrors.Internal("Failed to update reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update reservation", "id", id, "error", err)
		return err
	}

	res.ID = id
	s.publishEvent(ctx, EventReservationUpdated, res)

	s.cfg.Log.Info("Reservation updated successfully", "id", id, "room_id", res.RoomID)
	return nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		s.cfg.Log.Error("Failed to delete reservation", "id", id, "error", err)
		return apperrors.Internal("Failed to delete reservation", err)
	}

	s.publishEvent(ctx, EventReservationCancelled, res)

	s.cfg.Log.Info("Reservation deleted successfully", "id", id)
	return nil
}

// verifyNoConflict rejects a reservation whose interval intersects any
// other reservation of the same room. The previous day is included so an
// existing booking rolling past midnight still blocks.
func (s *reservationService) verifyNoConflict(ctx context.Context, res *model.Reservation, excludeID string) error {
	dates := []string{res.Date}
	if day, err := s.cfg.Formats.ParseDate(res.Date); err == nil {
		dates = append([]string{s.cfg.Formats.FormatDate(day.AddDate(0, 0, -1))}, dates...)
	}

	existing, err := s.repo.FindByRoomAndDates(ctx, res.RoomID, dates)
	if err != nil {
		return apperrors.Internal("Failed to check reservation conflicts", err)
	}

	cand := engine.Interval{Date: res.Date, Start: res.StartTime, End: res.EndTime}
	for _, other := range existing {
		if excludeID != "" && other.ID == excludeID {
			continue
		}
		if engine.Overlaps(*other, cand, s.cfg.Formats) {
			return apperrors.Conflict("Reservation overlaps an existing reservation").WithDetails(map[string]any{
				"conflicting_id": other.ID,
				"date":           other.Date,
				"start_time":     other.StartTime,
				"end_time":       other.EndTime,
			})
		}
	}

	return nil
}

func (s *reservationService) publishEvent(ctx context.Context, eventType string, res *model.Reservation) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewEventMessage(res.RoomID, eventType, "availability", res)
	if err != nil {
		s.cfg.Log.Error("Failed to encode reservation event", "type", eventType, "id", res.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish reservation event", "type", eventType, "id", res.ID, "error", err)
	}
}
