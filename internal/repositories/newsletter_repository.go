package repositories

import (
	"context"
	"errors"
	"time"

	"medspace-api/internal/models"
	"medspace-api/internal/utils"
	"medspace-api/pkg/cache"
	"medspace-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const newslettersCollection = database.NewslettersCollection

type newsletterRepository struct {
	collection *mongo.Collection
}

func NewNewsletterRepository(db database.Database) NewsletterRepository {
	return &newsletterRepository{
		collection: db.GetCollection(newslettersCollection),
	}
}

func (r *newsletterRepository) FindByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	start := time.Now()
	err := r.collection.FindOne(ctx, bson.M{"email": cache.NormalizeEmail(email)}).Decode(&subscriber)
	utils.RecordMongoOperationDuration("find_one", newslettersCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.RecordMongoError("find_one", newslettersCollection)
		return nil, err
	}
	return &subscriber, nil
}

func (r *newsletterRepository) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	if subscriber.ID.IsZero() {
		subscriber.ID = primitive.NewObjectID()
	}
	subscriber.Email = cache.NormalizeEmail(subscriber.Email)
	if subscriber.SubscribedAt.IsZero() {
		subscriber.SubscribedAt = time.Now().UTC()
	}

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, subscriber)
	utils.RecordMongoOperationDuration("insert", newslettersCollection, start)
	if err != nil {
		utils.RecordMongoError("insert", newslettersCollection)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *newsletterRepository) ListEmails(ctx context.Context) ([]string, error) {
	findOptions := options.Find().
		SetProjection(bson.M{"email": 1}).
		SetSort(bson.D{{Key: "subscribedAt", Value: 1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	utils.RecordMongoOperationDuration("find", newslettersCollection, start)
	if err != nil {
		utils.RecordMongoError("find", newslettersCollection)
		return nil, err
	}
	defer cursor.Close(ctx)

	var subscribers []models.NewsletterSubscriber
	start = time.Now()
	err = cursor.All(ctx, &subscribers)
	utils.RecordMongoOperationDuration("cursor_all", newslettersCollection, start)
	if err != nil {
		utils.RecordMongoError("cursor_all", newslettersCollection)
		return nil, err
	}

	emails := make([]string, 0, len(subscribers))
	for _, s := range subscribers {
		emails = append(emails, s.Email)
	}
	return emails, nil
}
