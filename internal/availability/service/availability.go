package service

import (
	"context"
	"errors"
	"time"

	"slotbook/internal/availability/engine"
	"slotbook/internal/availability/repository"
	"slotbook/internal/availability/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/model"
	"slotbook/pkg/sanitizer"
)

type AvailabilityService interface {
	Slots(ctx context.Context, q *model.SlotQuery) ([]engine.TimeSlot, error)
	StartTimes(ctx context.Context, q *model.StartTimesQuery) ([]engine.StartOption, error)
	EndTimes(ctx context.Context, q *model.EndTimesQuery) ([]engine.EndOption, error)
}

type availabilityService struct {
	repo      repository.ReservationRepository
	validator *validator.AvailabilityValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewAvailabilityService(
	repo repository.ReservationRepository,
	validator *validator.AvailabilityValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *availabilityService) Slots(ctx context.Context, q *model.SlotQuery) ([]engine.TimeSlot, error) {
	q.RoomID = sanitizer.NormalizeRoomID(q.RoomID)
	if err := s.validator.ValidateSlotQuery(q); err != nil {
		return nil, validationError(err)
	}

	reserved, err := s.loadReservations(ctx, q.RoomID, q.Date, false)
	if err != nil {
		return nil, err
	}

	slots := engine.GenerateSlots(q.Date, s.granularity(q.Granularity), reserved, s.now(), s.cfg.Formats)
	return slots, nil
}

func (s *availabilityService) StartTimes(ctx context.Context, q *model.StartTimesQuery) ([]engine.StartOption, error) {
	q.RoomID = sanitizer.NormalizeRoomID(q.RoomID)
	if err := s.validator.ValidateStartTimesQuery(q); err != nil {
		return nil, validationError(err)
	}

	reserved, err := s.loadReservations(ctx, q.RoomID, q.Date, false)
	if err != nil {
		return nil, err
	}

	now := s.now()
	opt := s.engineOptions(q.Granularity)
	if q.AllowNow != nil {
		opt.AllowNow = *q.AllowNow
	}

	slots := engine.GenerateSlots(q.Date, opt.GranularityMin, reserved, now, opt.Formats)
	options := engine.StartOptions(slots, q.Date, reserved, now, opt)
	if options == nil {
		options = []engine.StartOption{}
	}
	return options, nil
}

func (s *availabilityService) EndTimes(ctx context.Context, q *model.EndTimesQuery) ([]engine.EndOption, error) {
	q.RoomID = sanitizer.NormalizeRoomID(q.RoomID)
	if err := s.validator.ValidateEndTimesQuery(q); err != nil {
		return nil, validationError(err)
	}

	// cross-day ends need the following day's reservations too
	reserved, err := s.loadReservations(ctx, q.RoomID, q.Date, true)
	if err != nil {
		return nil, err
	}

	now := s.now()
	opt := s.engineOptions(q.Granularity)
	if q.MinUsageHours != nil {
		opt.MinUsageHours = *q.MinUsageHours
	}
	if q.MaxUsageHours != nil {
		opt.MaxUsageHours = *q.MaxUsageHours
	}

	slots := engine.GenerateSlots(q.Date, opt.GranularityMin, reserved, now, opt.Formats)
	options := engine.EndOptions(slots, q.Date, q.Start, reserved, now, opt)
	if options == nil {
		options = []engine.EndOption{}
	}
	return options, nil
}

func (s *availabilityService) loadReservations(ctx context.Context, roomID, date string, includeNextDay bool) ([]model.Reservation, error) {
	dates := []string{date}
	if includeNextDay {
		if day, err := s.cfg.Formats.ParseDate(date); err == nil {
			dates = append(dates, s.cfg.Formats.FormatDate(day.AddDate(0, 0, 1)))
		}
	}

	found, err := s.repo.FindByRoomAndDates(ctx, roomID, dates)
	if err != nil {
		s.cfg.Log.Error("Failed to load reservations", "room_id", roomID, "dates", dates, "error", err)
		return nil, apperrors.Internal("Failed to load reservations", err)
	}

	reserved := make([]model.Reservation, 0, len(found))
	for _, r := range found {
		reserved = append(reserved, *r)
	}
	return reserved, nil
}

func (s *availabilityService) granularity(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.cfg.SlotGranularityMin
}

func (s *availabilityService) engineOptions(granularity int) engine.Options {
	return engine.Options{
		Formats:        s.cfg.Formats,
		Labels:         s.cfg.Labels,
		GranularityMin: s.granularity(granularity),
		AllowNow:       s.cfg.AllowNowStart,
		MinUsageHours:  s.cfg.MinUsageHours,
		MaxUsageHours:  s.cfg.MaxUsageHours,
		CrossDay:       s.cfg.CrossDayEndTimes,
	}
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]any, len(validationErrs))
		for _, v := range validationErrs {
			details[v.Field] = v.Message
		}
		return apperrors.Validation("Validation failed", details)
	}
	return apperrors.Validation(err.Error(), nil)
}
