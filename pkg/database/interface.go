package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	UsersCollection       = "users"
	NewslettersCollection = "newsletters"
)

// Database is the subset of MongoDB operations the application depends on.
type Database interface {
	GetCollection(name string) *mongo.Collection
	EnsureIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}

// MongoDatabase implements Database on top of a connected client.
type MongoDatabase struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoDatabase(client *mongo.Client, db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{client: client, db: db}
}

func (m *MongoDatabase) GetCollection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoDatabase) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoDatabase) EnsureIndexes(ctx context.Context) error {
	if err := CreateUserIndexes(ctx, m.db); err != nil {
		return err
	}
	return CreateNewsletterIndexes(ctx, m.db)
}
