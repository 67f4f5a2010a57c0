package validators

import (
	"fmt"
	"reflect"
	"strings"

	"medspace-api/internal/auth"

	"github.com/go-playground/validator/v10"
)

func describe(fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number (7-15 digits, optional leading +)"
	case "bcryptlen":
		return fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes)
	case "numeric":
		return "must contain only digits"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "min":
		if kind == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if kind == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "lt":
		if fe.Param() == "" {
			return "must be in the past"
		}
		return fmt.Sprintf("must be less than %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
