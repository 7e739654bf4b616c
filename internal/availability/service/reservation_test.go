package service

import (
	"context"
	"testing"

	availabilityerrors "slotbook/internal/availability/errors"
	"slotbook/internal/availability/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/kafka"
	"slotbook/pkg/model"
)

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (p *mockPublisher) Publish(_ context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func newReservationService(repo *mockReservationRepository, pub EventPublisher, cfg *config.Config) ReservationService {
	return NewReservationService(repo, validator.NewAvailabilityValidator(cfg.Formats, cfg.Log), pub, cfg)
}

func TestCreateReservation(t *testing.T) {
	cfg := testConfig()
	repo := &mockReservationRepository{
		createFn: func(_ context.Context, res *model.Reservation) error {
			res.ID = "65f000000000000000000001"
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newReservationService(repo, pub, cfg)

	res := &model.Reservation{
		RoomID:    "  room-1  ",
		Date:      "2026-03-14",
		StartTime: "14:00",
		EndTime:   "15:00",
	}
	if err := svc.Create(context.Background(), res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.RoomID != "room-1" {
		t.Errorf("expected room id trimmed, got %q", res.RoomID)
	}
	if res.Source != model.ReservationSourceAPI {
		t.Errorf("expected source defaulted to api, got %q", res.Source)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	msg := pub.published[0]
	if msg.Key != "room-1" || msg.EventType() != EventReservationCreated {
		t.Errorf("unexpected event key %q type %q", msg.Key, msg.EventType())
	}
}

func TestCreateReservationConflict(t *testing.T) {
	cfg := testConfig()
	created := false
	repo := &mockReservationRepository{
		findByRoomAndDatesFn: func(_ context.Context, roomID string, dates []string) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{ID: "r1", RoomID: roomID, Date: "2026-03-14", StartTime: "14:00", EndTime: "15:00"},
			}, nil
		},
		createFn: func(context.Context, *model.Reservation) error {
			created = true
			return nil
		},
	}
	pub := &mockPublisher{}
	svc := newReservationService(repo, pub, cfg)

	err := svc.Create(context.Background(), &model.Reservation{
		RoomID:    "room-1",
		Date:      "2026-03-14",
		StartTime: "14:30",
		EndTime:   "15:30",
	})
	if code := appErrorCode(t, err); code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %s", code)
	}
	if created {
		t.Errorf("expected no insert after a conflict")
	}
	if len(pub.published) != 0 {
		t.Errorf("expected no event after a conflict")
	}
}

func TestCreateReservationTouchingBoundary(t *testing.T) {
	cfg := testConfig()
	repo := &mockReservationRepository{
		findByRoomAndDatesFn: func(_ context.Context, roomID string, dates []string) ([]*model.Reservation, error) {
			return []*model.Reservation{
				{ID: "r1", RoomID: roomID, Date: "2026-03-14", StartTime: "14:00", EndTime: "15:00"},
			}, nil
		},
	}
	svc := newReservationService(repo, &mockPublisher{}, cfg)

	err := svc.Create(context.Background(), &model.Reservation{
		RoomID:    "room-1",
		Date:      "2026-03-14",
		StartTime: "15:00",
		EndTime:   "16:00",
	})
	if err != nil {
		t.Fatalf("expected a back-to-back reservation to be allowed, got %v", err)
	}
}

func TestCreateReservationAfterMidnightEnd(t *testing.T) {
	cfg := testConfig()
	repo := &mockReservationRepository{
		findByRoomAndDatesFn: func(_ context.Context, roomID string, dates []string) ([]*model.Reservation, error) {
			if len(dates) != 2 {
				t.Errorf("expected the previous day to be checked too, got %v", dates)
			}
			// an existing booking on the previous evening ending at midnight
			return []*model.Reservation{
				{ID: "r1", RoomID: roomID, Date: "2026-03-13", StartTime: "23:00", EndTime: "00:00"},
			}, nil
		},
	}
	svc := newReservationService(repo, &mockPublisher{}, cfg)

	// touching at midnight is not an overlap
	err := svc.Create(context.Background(), &model.Reservation{
		RoomID:    "room-1",
		Date:      "2026-03-14",
		StartTime: "00:00",
		EndTime:   "01:00",
	})
	if err != nil {
		t.Errorf("expected a booking starting at midnight to be allowed, got %v", err)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	cfg := testConfig()
	svc := newReservationService(&mockReservationRepository{}, &mockPublisher{}, cfg)

	tests := []struct {
		name string
		res  model.Reservation
	}{
		{"missing room", model.Reservation{Date: "2026-03-14", StartTime: "14:00", EndTime: "15:00"}},
		{"bad clock", model.Reservation{RoomID: "room-1", Date: "2026-03-14", StartTime: "2pm", EndTime: "15:00"}},
		{"end equals start", model.Reservation{RoomID: "room-1", Date: "2026-03-14", StartTime: "14:00", EndTime: "14:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), &tt.res)
			if code := appErrorCode(t, err); code != apperrors.CodeValidation {
				t.Errorf("expected validation error, got %s", code)
			}
		})
	}
}

func TestGetReservationNotFound(t *testing.T) {
	cfg := testConfig()
	repo := &mockReservationRepository{
		findByIDFn: func(_ context.Context, id string) (*model.Reservation, error) {
			return nil, availabilityerrors.ErrNotFound
		},
	}
	svc := newReservationService(repo, &mockPublisher{}, cfg)

	_, err := svc.GetByID(context.Background(), "65f000000000000000000009")
	if code := appErrorCode(t, err); code != apperrors.CodeNotFound {
		t.Errorf("expected not found, got %s", code)
	}
}

func TestDeleteReservationPublishesCancel(t *testing.T) {
	cfg := testConfig()
	stored := &model.Reservation{
		ID:        "65f000000000000000000001",
		RoomID:    "room-1",
		Date:      "2026-03-14",
		StartTime: "14:00",
		EndTime:   "15:00",
	}
	repo := &mockReservationRepository{
		findByIDFn: func(context.Context, string) (*model.Reservation, error) {
			return stored, nil
		},
	}
	pub := &mockPublisher{}
	svc := newReservationService(repo, pub, cfg)

	if err := svc.Delete(context.Background(), stored.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0].EventType() != EventReservationCancelled {
		t.Fatalf("expected one cancellation event, got %+v", pub.published)
	}
}
