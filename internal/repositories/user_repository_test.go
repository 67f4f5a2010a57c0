package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"medspace-api/internal/models"
	"medspace-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupMongo connects to MONGO_TEST_URI and returns a throwaway database.
func setupMongo(t *testing.T) database.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set, skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("MongoDB not reachable: %v", err)
	}

	name := "medspace_test_" + primitive.NewObjectID().Hex()
	db := database.NewMongoDatabase(client, client.Database(name))
	if err := db.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database(name).Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestUserRepositoryLifecycle(t *testing.T) {
	db := setupMongo(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "Ada", Email: "Ada@Example.com", Password: "hash", Role: models.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID.IsZero() {
		t.Fatal("create must assign an id")
	}

	dup := &models.User{Name: "Other", Email: "ada@example.com"}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	found.Appointments = append(found.Appointments, models.NewAppointment(time.Now().UTC(), "checkup", models.StatusPending))
	if err := repo.Save(ctx, found); err != nil {
		t.Fatalf("save: %v", err)
	}

	expiry := time.Now().Add(10 * time.Minute).UTC()
	found.OTP, found.OTPExpiry = "123456", &expiry
	if err := repo.Update(ctx, found, "otp", "otpExpiry"); err != nil {
		t.Fatalf("update: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if len(reloaded.Appointments) != 1 || reloaded.OTP != "123456" {
		t.Fatalf("unexpected document: %+v", reloaded)
	}

	reloaded.ClearOTP()
	if err := repo.Update(ctx, reloaded, "otp", "otpExpiry"); err != nil {
		t.Fatalf("clear otp: %v", err)
	}
	cleared, _ := repo.FindByID(ctx, user.ID)
	if cleared.OTP != "" || cleared.OTPExpiry != nil {
		t.Fatal("otp fields should be unset")
	}

	users, total, err := repo.FindWithPagination(ctx, 0, 10)
	if err != nil || total != 1 || len(users) != 1 {
		t.Fatalf("pagination: users=%d total=%d err=%v", len(users), total, err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewsletterRepositoryRejectsDuplicates(t *testing.T) {
	db := setupMongo(t)
	repo := NewNewsletterRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.NewsletterSubscriber{Email: "a@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &models.NewsletterSubscriber{Email: "A@example.com"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	emails, err := repo.ListEmails(ctx)
	if err != nil || len(emails) != 1 {
		t.Fatalf("list: %v %v", emails, err)
	}
}
