package service

import (
	crand "crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/cfspeed_errors"
	log "github.com/sirupsen/logrus"
)

// GenerateSecureToken returns n random bytes encoded as url safe base64
func GenerateSecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := crand.Read(buf); err != nil {
		err = fmt.Errorf("%w, unable to read random bytes, %w", cfspeed_errors.ErrInternal, err)
		log.Error(err)
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// custom function for translating validation error into user readable errors
func translateValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", e.Field())
	default:
		return fmt.Sprintf("Validation failed for %s with rule %s", e.Field(), e.Tag())
	}
}

// ValidateInput validates the input struct using the shared validator.
// If validation fails, it logs and returns the first user-friendly error message.
// Returns nil if input is valid.
func ValidateInput(inp any) error {
	InitializeServices()
	if err := validate.Struct(inp); err != nil {
		var validationErrors validator.ValidationErrors
		// Check if the error is a set of validation errors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			// Grab and translate the first validation error for user feedback
			errorMessage := translateValidationError(validationErrors[0])
			log.Error(errorMessage)
			// Wrap the error with a custom invalid input error
			return fmt.Errorf("%w, %s", cfspeed_errors.ErrInvalidInput, errorMessage)
		}
		// not a struct or a misconfigured tag
		err = fmt.Errorf("%w, cannot validate %T, %w", cfspeed_errors.ErrInternal, inp, err)
		log.Error(err)
		return err
	}
	// All good, input is valid
	return nil
}
