package errors

import (
	"fmt"
	"net/http"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
	Details          []FieldError
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.TechnicalMessage)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.TechnicalMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Common error codes
const (
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeInvalidID             = "INVALID_ID"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodePasswordResetRequired = "PASSWORD_RESET_REQUIRED"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodeAppointmentNotFound   = "APPOINTMENT_NOT_FOUND"
	ErrCodeEmailTaken            = "EMAIL_ALREADY_REGISTERED"
	ErrCodeAlreadySubscribed     = "ALREADY_SUBSCRIBED"
	ErrCodeNoSubscribers         = "NO_SUBSCRIBERS"
	ErrCodeInvalidOTP            = "INVALID_OTP"
	ErrCodeResetNotVerified      = "RESET_NOT_VERIFIED"
	ErrCodeRateLimited           = "RATE_LIMITED"
	ErrCodeServiceUnavailable    = "SERVICE_UNAVAILABLE"
	ErrCodeInternal              = "INTERNAL_ERROR"
)

// Validation builds a 400 carrying every violated field.
func Validation(details []FieldError) *AppError {
	return &AppError{
		TechnicalMessage: fmt.Sprintf("validation failed on %d field(s)", len(details)),
		UserMessage:      MsgValidation,
		Code:             ErrCodeValidation,
		HTTPStatus:       http.StatusBadRequest,
		Details:          details,
	}
}

func InvalidID(field, value string) *AppError {
	return &AppError{
		TechnicalMessage: fmt.Sprintf("malformed %s %q", field, value),
		UserMessage:      fmt.Sprintf("Invalid %s", field),
		Code:             ErrCodeInvalidID,
		HTTPStatus:       http.StatusBadRequest,
	}
}

func Unauthorized(technical string) *AppError {
	return NewAppError(technical, MsgUnauthorized, ErrCodeUnauthorized, http.StatusUnauthorized, nil)
}

func Forbidden(technical string) *AppError {
	return NewAppError(technical, MsgForbidden, ErrCodeForbidden, http.StatusForbidden, nil)
}

func NotFound(code, userMessage string) *AppError {
	return NewAppError(userMessage, userMessage, code, http.StatusNotFound, nil)
}

func BadRequest(code, userMessage string) *AppError {
	return NewAppError(userMessage, userMessage, code, http.StatusBadRequest, nil)
}

// Internal hides err from the client and keeps it for the logs.
func Internal(operation string, err error) *AppError {
	return NewAppError(operation, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
}
