package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusEmergency = "emergency"
)

// Appointment is owned by exactly one User; its id is unique only within that user's list.
type Appointment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Date      time.Time          `json:"date" bson:"date"`
	Reason    string             `json:"reason" bson:"reason"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewAppointment stamps a fresh id and timestamps.
func NewAppointment(date time.Time, reason, status string) Appointment {
	now := time.Now().UTC()
	return Appointment{
		ID:        primitive.NewObjectID(),
		Date:      date,
		Reason:    reason,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
