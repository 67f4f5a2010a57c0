package repositories

import (
	"fmt"

	"medspace-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SplitUserFields encodes user and sorts the requested fields into $set and $unset documents.
func SplitUserFields(user *models.User, fields []string) (bson.M, bson.M, error) {
	raw, err := bson.Marshal(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode user: %v", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode user: %v", err)
	}

	set, unset := bson.M{}, bson.M{}
	for _, f := range fields {
		if f == "_id" {
			continue
		}
		if v, ok := doc[f]; ok {
			set[f] = v
		} else {
			unset[f] = ""
		}
	}
	return set, unset, nil
}
