package validators

import (
	"errors"
	"strings"
	"testing"

	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/models"
)

const validRegistration = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"password": "supersecret",
	"phone": "+15551234567",
	"dob": "1990-05-01T00:00:00Z",
	"gender": "Female",
	"address": {"street": "1 Main St", "city": "London", "state": "LDN", "postalCode": "12345"},
	"medicalHistory": ["asthma"]
}`

func bindString(body string, dst interface{}) error {
	if err := Decode(strings.NewReader(body), dst); err != nil {
		return err
	}
	return Validate(dst)
}

func detailsOf(t *testing.T, err error) []apperrors.FieldError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.ErrCodeValidation || appErr.HTTPStatus != 400 {
		t.Fatalf("expected 400 VALIDATION_ERROR, got %d %s", appErr.HTTPStatus, appErr.Code)
	}
	return appErr.Details
}

func hasField(details []apperrors.FieldError, field string) bool {
	for _, d := range details {
		if d.Field == field {
			return true
		}
	}
	return false
}

func TestRegisterRequestValid(t *testing.T) {
	var req models.RegisterRequest
	if err := bindString(validRegistration, &req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if req.Address == nil || req.Address.City != "London" {
		t.Errorf("address not decoded: %+v", req.Address)
	}
}

func TestRegisterShortPasswordListed(t *testing.T) {
	body := strings.Replace(validRegistration, `"supersecret"`, `"short"`, 1)
	var req models.RegisterRequest
	details := detailsOf(t, bindString(body, &req))

	if !hasField(details, "password") {
		t.Fatalf("expected password violation, got %+v", details)
	}
	for _, d := range details {
		if d.Field == "password" && !strings.Contains(d.Message, "8") {
			t.Errorf("message should mention the minimum length: %q", d.Message)
		}
	}
}

func TestRegisterReportsEveryViolation(t *testing.T) {
	body := `{"name": "A", "email": "nope", "password": "x", "phone": "12", "gender": "Robot",
		"address": {"street": "", "city": "c", "state": "s", "postalCode": "1"}}`
	var req models.RegisterRequest
	details := detailsOf(t, bindString(body, &req))

	for _, field := range []string{"name", "email", "password", "phone", "dob", "gender", "address.street", "address.postalCode"} {
		if !hasField(details, field) {
			t.Errorf("missing violation for %s in %+v", field, details)
		}
	}
}

func TestDecodeRejections(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty body", "", "body"},
		{"malformed json", `{"email":`, "body"},
		{"unknown field", `{"email": "a@b.co", "isAdmin": true}`, "isAdmin"},
		{"wrong type", `{"email": 42}`, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req models.ForgotPasswordRequest
			details := detailsOf(t, bindString(tt.body, &req))
			if !hasField(details, tt.field) {
				t.Errorf("expected violation on %s, got %+v", tt.field, details)
			}
		})
	}
}

func TestBookingAcceptsIgnoredStatus(t *testing.T) {
	var req models.CreateAppointmentRequest
	err := bindString(`{"date": "2030-01-01T09:00:00Z", "reason": "checkup", "status": "confirmed"}`, &req)
	if err != nil {
		t.Fatalf("status on booking should not be rejected: %v", err)
	}
}

func TestPartialUpdateSchema(t *testing.T) {
	var empty models.UpdateUserRequest
	if err := bindString(`{}`, &empty); err != nil {
		t.Fatalf("empty partial update should pass: %v", err)
	}

	var bad models.UpdateUserRequest
	details := detailsOf(t, bindString(`{"password": "short", "address": {"city": "x"}}`, &bad))
	if !hasField(details, "password") || !hasField(details, "address.street") {
		t.Errorf("present fields must be fully validated, got %+v", details)
	}
}

func TestVerifyOTPShape(t *testing.T) {
	var req models.VerifyOTPRequest
	details := detailsOf(t, bindString(`{"email": "a@b.co", "otp": "12ab"}`, &req))
	if !hasField(details, "otp") {
		t.Errorf("expected otp violation, got %+v", details)
	}
}

func TestObjectID(t *testing.T) {
	if _, err := ObjectID("appointmentId", "64b7f0c2a1b2c3d4e5f60718"); err != nil {
		t.Fatalf("valid id rejected: %v", err)
	}

	_, err := ObjectID("appointmentId", "not-an-id")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeInvalidID || appErr.HTTPStatus != 400 {
		t.Fatalf("expected 400 INVALID_ID, got %v", err)
	}
}

func TestPasswordLimitCountsBytes(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"at limit", strings.Repeat("a", 72), false},
		{"over limit", strings.Repeat("a", 80), true},
		{"multibyte over limit", strings.Repeat("é", 40), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Replace(validRegistration, `"supersecret"`, `"`+tt.password+`"`, 1)
			var req models.RegisterRequest
			err := bindString(body, &req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			details := detailsOf(t, err)
			if !hasField(details, "password") {
				t.Fatalf("expected password violation, got %+v", details)
			}
			for _, d := range details {
				if d.Field == "password" && !strings.Contains(d.Message, "72 bytes") {
					t.Errorf("message should name the byte limit: %q", d.Message)
				}
			}
		})
	}
}
