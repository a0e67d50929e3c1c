package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateRequest checks validate tags and reports the first failing field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return NewValidationError("Invalid request body")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return NewValidationError(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return NewValidationError(fmt.Sprintf("%s must be a valid email", fe.Field()))
	case "oneof":
		return NewValidationError(fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
	case "min":
		return NewValidationError(fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
	case "max":
		return NewValidationError(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return NewValidationError(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
