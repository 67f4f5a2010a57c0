package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NewsletterSubscriber struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id"`
	Email        string             `json:"email" bson:"email"`
	SubscribedAt time.Time          `json:"subscribedAt" bson:"subscribedAt"`
}

// BroadcastFailure records one recipient that could not be reached.
type BroadcastFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// BroadcastReport is the per-recipient outcome of a newsletter send.
type BroadcastReport struct {
	Total  int                `json:"total"`
	Sent   int                `json:"sent"`
	Failed []BroadcastFailure `json:"failed"`
}
