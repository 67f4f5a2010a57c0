package validators

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"medspace-api/internal/auth"
	apperrors "medspace-api/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

// Engine returns the shared validator configured with JSON field names and custom tags.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= auth.MaxPasswordBytes
		})
		engine = v
	})
	return engine
}

// Bind decodes the JSON body strictly into dst and validates every field.
// Any failure is returned as a VALIDATION_ERROR AppError listing all violations.
func Bind(c *gin.Context, dst interface{}) error {
	if err := Decode(c.Request.Body, dst); err != nil {
		return err
	}
	return Validate(dst)
}

// Decode reads a single JSON object, rejecting unknown fields and type mismatches.
func Decode(body io.Reader, dst interface{}) error {
	if body == nil {
		return apperrors.Validation([]apperrors.FieldError{{Field: "body", Message: "request body is required"}})
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.Validation([]apperrors.FieldError{decodeFieldError(err)})
	}
	if dec.More() {
		return apperrors.Validation([]apperrors.FieldError{{Field: "body", Message: "must contain a single JSON object"}})
	}
	return nil
}

// Validate runs struct validation and collects every violation.
func Validate(v interface{}) error {
	err := Engine().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return apperrors.Validation([]apperrors.FieldError{{Field: "body", Message: err.Error()}})
	}

	details := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		details = append(details, apperrors.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s %s", field, describe(fe)),
		})
	}
	return apperrors.Validation(details)
}

func decodeFieldError(err error) apperrors.FieldError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError

	switch {
	case stderrors.Is(err, io.EOF):
		return apperrors.FieldError{Field: "body", Message: "request body is required"}
	case stderrors.As(err, &syntaxErr), stderrors.Is(err, io.ErrUnexpectedEOF):
		return apperrors.FieldError{Field: "body", Message: "request body is not valid JSON"}
	case stderrors.As(err, &typeErr):
		return apperrors.FieldError{Field: typeErr.Field, Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String())}
	case stderrors.As(err, &timeErr):
		return apperrors.FieldError{Field: "body", Message: "dates must use RFC 3339 format, e.g. 2025-01-31T10:00:00Z"}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperrors.FieldError{Field: name, Message: fmt.Sprintf("%s is not an allowed field", name)}
	default:
		return apperrors.FieldError{Field: "body", Message: err.Error()}
	}
}

// fieldPath turns "RegisterRequest.address.city" into "address.city",
// dropping the root type and any embedded Go struct names.
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := parts[:0]
	for i, p := range parts {
		if i == 0 || p == "" {
			continue
		}
		if first := p[0]; first >= 'A' && first <= 'Z' {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return namespace
	}
	return strings.Join(kept, ".")
}
