package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	ProviderLocal     = "local"
	ProviderGoogle    = "google"
	ProviderEmergency = "emergency"
)

type Address struct {
	Street     string `json:"street" bson:"street" validate:"required,min=1,max=200"`
	City       string `json:"city" bson:"city" validate:"required,min=1,max=100"`
	State      string `json:"state" bson:"state" validate:"required,min=1,max=100"`
	PostalCode string `json:"postalCode" bson:"postalCode" validate:"required,min=3,max=12"`
}

// User is the patient document. Appointments are embedded and have no life outside it.
type User struct {
	ID                    primitive.ObjectID `json:"_id" bson:"_id"`
	Name                  string             `json:"name" bson:"name"`
	Email                 string             `json:"email" bson:"email"`
	Password              string             `json:"-" bson:"password"`
	Phone                 string             `json:"phone,omitempty" bson:"phone,omitempty"`
	DOB                   *time.Time         `json:"dob,omitempty" bson:"dob,omitempty"`
	Gender                string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Age                   int                `json:"age,omitempty" bson:"age,omitempty"`
	Address               *Address           `json:"address,omitempty" bson:"address,omitempty"`
	MedicalHistory        []string           `json:"medicalHistory" bson:"medicalHistory"`
	Role                  string             `json:"role" bson:"role"`
	AuthProvider          string             `json:"authProvider" bson:"authProvider"`
	PasswordResetRequired bool               `json:"passwordResetRequired" bson:"passwordResetRequired"`
	OTP                   string             `json:"-" bson:"otp,omitempty"`
	OTPExpiry             *time.Time         `json:"-" bson:"otpExpiry,omitempty"`
	Appointments          []Appointment      `json:"appointments" bson:"appointments"`
	CreatedAt             time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether the user may call admin routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ClearOTP drops any pending one-time code.
func (u *User) ClearOTP() {
	u.OTP = ""
	u.OTPExpiry = nil
}

// FindAppointment returns the index of the embedded appointment with id, or -1.
func (u *User) FindAppointment(id primitive.ObjectID) int {
	for i := range u.Appointments {
		if u.Appointments[i].ID == id {
			return i
		}
	}
	return -1
}
