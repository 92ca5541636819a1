package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"massbook/pkg/logger"
	"massbook/pkg/model"
)

const (
	maxExtraFields      = 20
	maxExtraKeyLength   = 40
	maxExtraValueLength = 500
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

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("extra_map", validateExtraMap); err != nil {
		log.Fatal("Failed to register 'extra_map' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// validateExtraMap bounds the open extension map: limited key count, no
// empty keys, capped key/value lengths.
func validateExtraMap(fl validator.FieldLevel) bool {
	extra, ok := fl.Field().Interface().(map[string]string)
	if !ok {
		return false
	}

	if len(extra) > maxExtraFields {
		return false
	}

	for key, value := range extra {
		if key == "" || len(key) > maxExtraKeyLength || len(value) > maxExtraValueLength {
			return false
		}
	}
	return true
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.EndDate != "" && booking.EndDate < booking.StartDate {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: "endDate cannot be before startDate",
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s must match the format %s", err.Field(), err.Param())
		case "extra_map":
			message = fmt.Sprintf("%s has too many entries or oversized keys/values", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
