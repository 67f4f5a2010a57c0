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

const usersCollection = database.UsersCollection

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db database.Database) UserRepository {
	return &userRepository{
		collection: db.GetCollection(usersCollection),
	}
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": cache.NormalizeEmail(email)})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	start := time.Now()
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	utils.RecordMongoOperationDuration("find_one", usersCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		utils.RecordMongoError("find_one", usersCollection)
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindWithPagination(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	start := time.Now()
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	utils.RecordMongoOperationDuration("count_documents", usersCollection, start)
	if err != nil {
		utils.RecordMongoError("count_documents", usersCollection)
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	start = time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	utils.RecordMongoOperationDuration("find", usersCollection, start)
	if err != nil {
		utils.RecordMongoError("find", usersCollection)
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	start = time.Now()
	err = cursor.All(ctx, &users)
	utils.RecordMongoOperationDuration("cursor_all", usersCollection, start)
	if err != nil {
		utils.RecordMongoError("cursor_all", usersCollection)
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = cache.NormalizeEmail(user.Email)
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.Appointments == nil {
		user.Appointments = []models.Appointment{}
	}
	if user.MedicalHistory == nil {
		user.MedicalHistory = []string{}
	}

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	utils.RecordMongoOperationDuration("insert", usersCollection, start)
	if err != nil {
		utils.RecordMongoError("insert", usersCollection)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	user.Email = cache.NormalizeEmail(user.Email)
	user.UpdatedAt = time.Now().UTC()

	start := time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	utils.RecordMongoOperationDuration("replace_one", usersCollection, start)
	if err != nil {
		utils.RecordMongoError("replace_one", usersCollection)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User, fields ...string) error {
	user.UpdatedAt = time.Now().UTC()
	set, unset, err := SplitUserFields(user, append(fields, "updatedAt"))
	if err != nil {
		return err
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	utils.RecordMongoOperationDuration("update_one", usersCollection, start)
	if err != nil {
		utils.RecordMongoError("update_one", usersCollection)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	utils.RecordMongoOperationDuration("delete_one", usersCollection, start)
	if err != nil {
		utils.RecordMongoError("delete_one", usersCollection)
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
