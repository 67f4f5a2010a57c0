package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"medspace-api/internal/auth"
	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/internal/repositories/inmemory"
	"medspace-api/internal/services"
	"medspace-api/internal/validators"
	"medspace-api/pkg/config"
	"medspace-api/pkg/database"
	"medspace-api/pkg/logger"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
)

var reasons = []string{
	"Annual checkup",
	"Follow-up visit",
	"Persistent cough",
	"Back pain",
	"Vaccination",
	"Blood test results",
	"Skin rash",
	"Migraine",
}

func main() {
	patients := flag.Int("patients", 25, "number of fake patients to create")
	maxAppointments := flag.Int("appointments", 3, "maximum appointments per patient")
	flag.Parse()

	_ = godotenv.Load()
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.GlobalLogger.Errorf("load config: %v", err)
		os.Exit(1)
	}
	logger.InitLogger(os.Stdout, cfg.Log.Level)
	logger.GlobalLogger.Println("seed starting")

	db, err := database.InitDB(cfg)
	if err != nil {
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.EnsureIndexes(ctx); err != nil {
		logger.GlobalLogger.Errorf("ensure indexes: %v", err)
		os.Exit(1)
	}

	users := repositories.NewUserRepository(db)
	userService := services.NewUserService(users, inmemory.NewProfileCache())

	if err := seedAdmin(ctx, userService); err != nil {
		logger.GlobalLogger.Errorf("seed admin: %v", err)
		os.Exit(1)
	}
	if err := seedPatients(ctx, users, *patients, *maxAppointments); err != nil {
		logger.GlobalLogger.Errorf("seed patients: %v", err)
		os.Exit(1)
	}

	logger.GlobalLogger.Println("seed complete")
}

func seedAdmin(ctx context.Context, userService *services.UserService) error {
	email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.GlobalLogger.Warnf("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}

	req := &models.CreateUserRequest{
		RegisterRequest: models.RegisterRequest{
			Name:     "Administrator",
			Email:    email,
			Password: password,
			Phone:    "0000000000",
			DOB:      time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:   "Other",
			Address:  &models.Address{Street: "Clinic", City: "Clinic", State: "Clinic", PostalCode: "000000"},
		},
		Role: models.RoleAdmin,
	}
	if err := validators.Validate(req); err != nil {
		return err
	}

	_, err := userService.Create(ctx, req)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeEmailTaken {
		logger.GlobalLogger.Printf("admin %s already exists", email)
		return nil
	}
	if err != nil {
		return err
	}
	logger.GlobalLogger.Printf("admin %s created", email)
	return nil
}

func seedPatients(ctx context.Context, users repositories.UserRepository, count, maxAppointments int) error {
	logger.GlobalLogger.Printf("seeding %d patients", count)

	// one shared hash keeps seeding fast; every fake patient logs in with "password123"
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	created := 0
	for i := 0; i < count; i++ {
		dob := gofakeit.DateRange(now.AddDate(-90, 0, 0), now.AddDate(-18, 0, 0)).UTC()
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Password: hash,
			Phone:    gofakeit.Phone(),
			DOB:      &dob,
			Gender:   gofakeit.RandomString([]string{"Male", "Female", "Other"}),
			Address: &models.Address{
				Street:     gofakeit.Street(),
				City:       gofakeit.City(),
				State:      gofakeit.State(),
				PostalCode: gofakeit.Zip(),
			},
			MedicalHistory: []string{},
			Role:           models.RoleUser,
			AuthProvider:   models.ProviderLocal,
		}
		for n := gofakeit.Number(0, maxAppointments); n > 0; n-- {
			date := gofakeit.DateRange(now, now.AddDate(0, 3, 0)).UTC().Truncate(time.Minute)
			user.Appointments = append(user.Appointments,
				models.NewAppointment(date, gofakeit.RandomString(reasons), models.StatusPending))
		}

		if err := users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateEmail) {
				continue
			}
			return err
		}
		created++
	}

	logger.GlobalLogger.Printf("patients seeded: %d/%d", created, count)
	return nil
}
