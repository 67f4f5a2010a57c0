package models

import "time"

type RegisterRequest struct {
	Name           string    `json:"name" validate:"required,min=2,max=100"`
	Email          string    `json:"email" validate:"required,email,max=254"`
	Password       string    `json:"password" validate:"required,min=8,bcryptlen"`
	Phone          string    `json:"phone" validate:"required,phone"`
	DOB            time.Time `json:"dob" validate:"required,lt"`
	Gender         string    `json:"gender" validate:"required,oneof=Male Female Other"`
	Address        *Address  `json:"address" validate:"required"`
	MedicalHistory []string  `json:"medicalHistory" validate:"omitempty,max=50,dive,min=1,max=500"`
}

// CreateUserRequest is the admin variant of registration that may also assign a role.
type CreateUserRequest struct {
	RegisterRequest
	Role string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=100"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8,bcryptlen"`
}

// CreateAppointmentRequest accepts a status field for client compatibility; it is never honoured.
type CreateAppointmentRequest struct {
	Date   time.Time `json:"date" validate:"required"`
	Reason string    `json:"reason" validate:"required,min=1,max=500"`
	Status string    `json:"status,omitempty" validate:"-"`
}

type UpdateAppointmentRequest struct {
	Date   time.Time `json:"date" validate:"required"`
	Reason string    `json:"reason" validate:"required,min=1,max=500"`
	Status string    `json:"status" validate:"required,min=1,max=32"`
}

type EmergencyAppointmentRequest struct {
	Name    string    `json:"name" validate:"required,min=2,max=100"`
	Email   string    `json:"email" validate:"required,email,max=254"`
	Age     *int      `json:"age" validate:"required,gte=0,lte=150"`
	Gender  string    `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Contact string    `json:"contact" validate:"required,phone"`
	Reason  string    `json:"reason" validate:"required,min=1,max=500"`
	Date    time.Time `json:"date" validate:"required"`
}

// AppointmentResponse wraps a newly booked appointment, regular or emergency.
type AppointmentResponse struct {
	Message     string      `json:"message"`
	Appointment Appointment `json:"appointment"`
}

// UpdateUserRequest is the relaxed schema: every field optional, present fields fully validated.
type UpdateUserRequest struct {
	Name           *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Email          *string    `json:"email" validate:"omitempty,email,max=254"`
	Password       *string    `json:"password" validate:"omitempty,min=8,bcryptlen"`
	Phone          *string    `json:"phone" validate:"omitempty,phone"`
	DOB            *time.Time `json:"dob" validate:"omitempty,lt"`
	Gender         *string    `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address        *Address   `json:"address"`
	MedicalHistory []string   `json:"medicalHistory" validate:"omitempty,max=50,dive,min=1,max=500"`
	Role           *string    `json:"role" validate:"omitempty,oneof=user admin"`
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type BroadcastRequest struct {
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Message string `json:"message" validate:"required,min=1,max=10000"`
}

type BroadcastResponse struct {
	Message string          `json:"message"`
	Report  BroadcastReport `json:"report"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// OAuthProfile is the subset of a third-party identity used to create or find an account.
type OAuthProfile struct {
	Provider    string
	ProviderID  string
	DisplayName string
	Email       string
}

// PaginatedUsersResponse is returned by the admin user listing.
type PaginatedUsersResponse struct {
	Users  []User `json:"users"`
	Total  int64  `json:"total"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
	Next   string `json:"next,omitempty"`
	Prev   string `json:"prev,omitempty"`
}
