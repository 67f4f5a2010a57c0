package validators

import (
	apperrors "medspace-api/internal/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID parses a hex document id, returning INVALID_ID on malformed input.
func ObjectID(field, value string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, apperrors.InvalidID(field, value)
	}
	return id, nil
}
