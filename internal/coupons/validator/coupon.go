package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"slotbook/pkg/logger"
	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

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

// CouponValidator checks stored coupons and the lookup, quote and redeem
// requests against the configured wire formats.
type CouponValidator struct {
	validate *validator.Validate
	formats  timefmt.Formats
	logger   *logger.Logger
}

func NewCouponValidator(formats timefmt.Formats, log *logger.Logger) *CouponValidator {
	v := validator.New()
	cv := &CouponValidator{
		validate: v,
		formats:  formats,
		logger:   log,
	}

	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register validator", "tag", tag, "error", err)
		}
	}
	register("valid_date", cv.validDate)
	register("valid_clock", cv.validClock)

	log.Info("Coupon validator initialized successfully")

	return cv
}

func (cv *CouponValidator) validDate(fl validator.FieldLevel) bool {
	_, err := cv.formats.ParseDate(fl.Field().String())
	return err == nil
}

func (cv *CouponValidator) validClock(fl validator.FieldLevel) bool {
	_, err := cv.formats.ParseClock(fl.Field().String())
	return err == nil
}

func (cv *CouponValidator) ValidateCoupon(c *model.Coupon) error {
	if err := cv.structErr(c); err != nil {
		return err
	}

	if c.Duration != nil && (c.Duration.Start == "") != (c.Duration.End == "") {
		return ValidationErrors{
			ValidationError{
				Field:   "Duration",
				Message: "duration must carry both start and end",
			},
		}
	}

	return nil
}

func (cv *CouponValidator) ValidateLookup(req *model.CouponLookupRequest) error {
	return cv.structErr(req)
}

func (cv *CouponValidator) ValidateQuote(req *model.CouponQuoteRequest) error {
	return cv.structErr(req)
}

func (cv *CouponValidator) ValidateRedeem(req *model.CouponRedeemRequest) error {
	return cv.structErr(req)
}

func (cv *CouponValidator) structErr(s any) error {
	if err := cv.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return cv.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (cv *CouponValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
