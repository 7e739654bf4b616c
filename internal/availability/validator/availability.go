package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"slotbook/internal/availability/engine"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

const minutesPerDay = 24 * 60

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// AvailabilityValidator checks reservations and availability queries. The
// date and clock rules run against the configured wire formats, so a
// deployment using DD/MM/YYYY validates exactly what it parses.
type AvailabilityValidator struct {
	validate *validator.Validate
	formats  timefmt.Formats
	logger   *logger.Logger
}

func NewAvailabilityValidator(formats timefmt.Formats, log *logger.Logger) *AvailabilityValidator {
	v := validator.New()
	av := &AvailabilityValidator{
		validate: v,
		formats:  formats,
		logger:   log,
	}

	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register validator", "tag", tag, "error", err)
		}
	}
	register("valid_date", av.validDate)
	register("valid_clock", av.validClock)
	register("start_value", av.validStartValue)
	register("divides_day", validDividesDay)

	log.Info("Availability validator initialized successfully")

	return av
}

func (av *AvailabilityValidator) validDate(fl validator.FieldLevel) bool {
	_, err := av.formats.ParseDate(fl.Field().String())
	return err == nil
}

func (av *AvailabilityValidator) validClock(fl validator.FieldLevel) bool {
	_, err := av.formats.ParseClock(fl.Field().String())
	return err == nil
}

func (av *AvailabilityValidator) validStartValue(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == engine.NowValue {
		return true
	}
	_, err := av.formats.ParseClock(s)
	return err == nil
}

func validDividesDay(fl validator.FieldLevel) bool {
	g := fl.Field().Int()
	return g > 0 && g <= minutesPerDay && minutesPerDay%g == 0
}

func (av *AvailabilityValidator) ValidateReservation(res *model.Reservation) error {
	if err := av.validate.Struct(res); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return av.translateValidationErrors(validationErrs)
		}
		return err
	}

	start, err := av.formats.ParseAt(res.Date, res.StartTime)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "StartTime", Message: "start_time is not a valid clock time"}}
	}
	end, err := av.formats.ParseAt(res.Date, res.EndTime)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "EndTime", Message: "end_time is not a valid clock time"}}
	}
	if !timefmt.RollMidnight(start, end).After(start) {
		return ValidationErrors{
			ValidationError{
				Field:   "EndTime",
				Message: "end_time must be after start_time",
			},
		}
	}

	return nil
}

func (av *AvailabilityValidator) ValidateSlotQuery(q *model.SlotQuery) error {
	return av.structErr(q)
}

func (av *AvailabilityValidator) ValidateStartTimesQuery(q *model.StartTimesQuery) error {
	return av.structErr(q)
}

func (av *AvailabilityValidator) ValidateEndTimesQuery(q *model.EndTimesQuery) error {
	if err := av.structErr(q); err != nil {
		return err
	}

	if q.MinUsageHours != nil && q.MaxUsageHours != nil && *q.MinUsageHours > *q.MaxUsageHours {
		return ValidationErrors{
			ValidationError{
				Field:   "MinUsageHours",
				Message: "min_usage_hours must not exceed max_usage_hours",
			},
		}
	}

	return nil
}

func (av *AvailabilityValidator) structErr(s any) error {
	if err := av.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return av.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (av *AvailabilityValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "valid_date":
			message = fmt.Sprintf("%s must match the configured date format", err.Field())
		case "valid_clock":
			message = fmt.Sprintf("%s must match the configured time format", err.Field())
		case "start_value":
			message = fmt.Sprintf("%s must be a clock time or the %q marker", err.Field(), engine.NowValue)
		case "divides_day":
			message = fmt.Sprintf("%s must evenly divide a day in minutes", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
