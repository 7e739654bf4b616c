package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"slotbook/internal/availability/service"
	apperrors "slotbook/pkg/errors"
	httputil "slotbook/pkg/http"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/slots", h.Slots)
	router.GET("/api/v1/availability/start-times", h.StartTimes)
	router.GET("/api/v1/availability/end-times", h.EndTimes)
}

func (h *AvailabilityHandler) Slots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	q := model.SlotQuery{
		RoomID: query.Get("room_id"),
		Date:   query.Get("date"),
	}
	if err := parseIntParam(query, "granularity", &q.Granularity); err != nil {
		h.writeError(w, "Slots", err)
		return
	}

	slots, err := h.service.Slots(r.Context(), &q)
	if err != nil {
		h.writeError(w, "Slots", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "Slots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) StartTimes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	q := model.StartTimesQuery{
		SlotQuery: model.SlotQuery{
			RoomID: query.Get("room_id"),
			Date:   query.Get("date"),
		},
	}
	if err := parseIntParam(query, "granularity", &q.Granularity); err != nil {
		h.writeError(w, "StartTimes", err)
		return
	}
	if err := parseBoolParam(query, "allow_now", &q.AllowNow); err != nil {
		h.writeError(w, "StartTimes", err)
		return
	}

	options, err := h.service.StartTimes(r.Context(), &q)
	if err != nil {
		h.writeError(w, "StartTimes", err)
		return
	}

	if err := httputil.WriteSuccess(w, options); err != nil {
		h.log.Error("failed to write success response", "handler", "StartTimes", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) EndTimes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	q := model.EndTimesQuery{
		SlotQuery: model.SlotQuery{
			RoomID: query.Get("room_id"),
			Date:   query.Get("date"),
		},
		Start: query.Get("start"),
	}
	if err := parseIntParam(query, "granularity", &q.Granularity); err != nil {
		h.writeError(w, "EndTimes", err)
		return
	}
	if err := parseFloatParam(query, "min_usage_hours", &q.MinUsageHours); err != nil {
		h.writeError(w, "EndTimes", err)
		return
	}
	if err := parseFloatParam(query, "max_usage_hours", &q.MaxUsageHours); err != nil {
		h.writeError(w, "EndTimes", err)
		return
	}

	options, err := h.service.EndTimes(r.Context(), &q)
	if err != nil {
		h.writeError(w, "EndTimes", err)
		return
	}

	if err := httputil.WriteSuccess(w, options); err != nil {
		h.log.Error("failed to write success response", "handler", "EndTimes", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func parseIntParam(query url.Values, name string, out *int) error {
	s := query.Get(name)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	*out = v
	return nil
}

func parseFloatParam(query url.Values, name string, out **float64) error {
	s := query.Get(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	*out = &v
	return nil
}

func parseBoolParam(query url.Values, name string, out **bool) error {
	s := query.Get(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	*out = &v
	return nil
}
