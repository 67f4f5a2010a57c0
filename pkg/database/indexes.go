package database

import (
	"context"
	"time"

	"medspace-api/pkg/logger"
	"medspace-api/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// unique email plus a lookup index on embedded appointment ids.
func CreateUserIndexes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection(UsersCollection)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "appointments._id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", UsersCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", UsersCollection).Inc()
		logger.GlobalLogger.Errorf("Failed to create user indexes: %v", err)
		return err
	}

	logger.GlobalLogger.Println("MongoDB user indexes created successfully.")
	return nil
}

func CreateNewsletterIndexes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection(NewslettersCollection)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", NewslettersCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", NewslettersCollection).Inc()
		logger.GlobalLogger.Errorf("Failed to create newsletter indexes: %v", err)
		return err
	}
	return nil
}
