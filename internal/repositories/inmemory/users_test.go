package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
)

func TestUserRepoUpdateOnlyTouchesNamedFields(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()

	user := &models.User{Name: "Ada", Email: "ada@example.com"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	// another request appends an appointment to the stored document
	stored, _ := repo.FindByID(ctx, user.ID)
	stored.Appointments = append(stored.Appointments, models.NewAppointment(time.Now(), "x", models.StatusPending))
	if err := repo.Save(ctx, stored); err != nil {
		t.Fatalf("save: %v", err)
	}

	expiry := time.Now().Add(time.Minute)
	user.OTP, user.OTPExpiry = "654321", &expiry
	if err := repo.Update(ctx, user, "otp", "otpExpiry"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := repo.FindByID(ctx, user.ID)
	if got.OTP != "654321" {
		t.Errorf("otp not written: %q", got.OTP)
	}
	if len(got.Appointments) != 1 {
		t.Errorf("update must not clobber appointments, got %d", len(got.Appointments))
	}
}

func TestUserRepoReturnsCopies(t *testing.T) {
	repo := NewUserRepo()
	ctx := context.Background()
	user := &models.User{Name: "Ada", Email: "ada@example.com"}
	_ = repo.Create(ctx, user)

	a, _ := repo.FindByID(ctx, user.ID)
	a.Name = "changed"
	b, _ := repo.FindByID(ctx, user.ID)
	if b.Name != "Ada" {
		t.Fatal("mutating a returned user must not change stored state")
	}

	if err := repo.Create(ctx, &models.User{Email: "ADA@example.com"}); !errors.Is(err, repositories.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}
