package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medspace-api/internal/auth"
	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/mailer"
	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/internal/validators"
	"medspace-api/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentService edits the appointment list embedded in a user document.
//
// Every write loads the user, changes the slice and saves the whole document.
// Concurrent edits to the same user can overwrite each other; the last save wins.
type AppointmentService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileCache
	mail     mailer.Queue
}

func NewAppointmentService(users repositories.UserRepository, profiles repositories.ProfileCache, mail mailer.Queue) *AppointmentService {
	return &AppointmentService{users: users, profiles: profiles, mail: mail}
}

func appointmentNotFound() *apperrors.AppError {
	return apperrors.NotFound(apperrors.ErrCodeAppointmentNotFound, apperrors.MsgAppointmentNotFound)
}

// Book appends a pending appointment. Any status on the request is ignored.
func (s *AppointmentService) Book(ctx context.Context, userID primitive.ObjectID, req *models.CreateAppointmentRequest) (*models.Appointment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError("find user", err)
	}

	appointment := models.NewAppointment(req.Date.UTC(), req.Reason, models.StatusPending)
	user.Appointments = append(user.Appointments, appointment)
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// List returns the user's appointments in booking order.
func (s *AppointmentService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError("find user", err)
	}
	if user.Appointments == nil {
		return []models.Appointment{}, nil
	}
	return user.Appointments, nil
}

// Update overwrites date, reason and status of one appointment.
func (s *AppointmentService) Update(ctx context.Context, userID primitive.ObjectID, appointmentID string, req *models.UpdateAppointmentRequest) (*models.Appointment, error) {
	id, err := validators.ObjectID("appointmentId", appointmentID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError("find user", err)
	}

	idx := user.FindAppointment(id)
	if idx < 0 {
		return nil, appointmentNotFound()
	}
	a := &user.Appointments[idx]
	a.Date = req.Date.UTC()
	a.Reason = req.Reason
	a.Status = req.Status
	a.UpdatedAt = time.Now().UTC()
	updated := *a

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *AppointmentService) Delete(ctx context.Context, userID primitive.ObjectID, appointmentID string) error {
	id, err := validators.ObjectID("appointmentId", appointmentID)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return lookupError("find user", err)
	}

	idx := user.FindAppointment(id)
	if idx < 0 {
		return appointmentNotFound()
	}
	user.Appointments = append(user.Appointments[:idx], user.Appointments[idx+1:]...)
	return s.save(ctx, user)
}

// BookEmergency books for the owner of req.Email, creating the account when none exists.
//
// Created accounts get a random password nobody knows and are flagged so login
// is refused until the owner completes the password reset flow.
func (s *AppointmentService) BookEmergency(ctx context.Context, req *models.EmergencyAppointmentRequest) (*models.Appointment, error) {
	appointment := models.NewAppointment(req.Date.UTC(), req.Reason, models.StatusEmergency)

	user, created, err := s.findOrCreateEmergencyUser(ctx, req, appointment)
	if err != nil {
		return nil, err
	}
	if !created {
		user.Appointments = append(user.Appointments, appointment)
		if err := s.save(ctx, user); err != nil {
			return nil, err
		}
	}

	s.sendEmergencyConfirmation(user, appointment, created)
	return &appointment, nil
}

func (s *AppointmentService) findOrCreateEmergencyUser(ctx context.Context, req *models.EmergencyAppointmentRequest, appointment models.Appointment) (*models.User, bool, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	password, err := auth.RandomPassword(24)
	if err != nil {
		return nil, false, apperrors.Internal("generate password", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, apperrors.Internal("hash password", err)
	}

	user = &models.User{
		Name:                  req.Name,
		Email:                 req.Email,
		Password:              hash,
		Phone:                 req.Contact,
		Gender:                req.Gender,
		Role:                  models.RoleUser,
		AuthProvider:          models.ProviderEmergency,
		PasswordResetRequired: true,
		Appointments:          []models.Appointment{appointment},
	}
	if req.Age != nil {
		user.Age = *req.Age
	}

	err = s.users.Create(ctx, user)
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		// lost a race with another request for the same email; book on that account instead
		existing, findErr := s.users.FindByEmail(ctx, req.Email)
		if findErr != nil {
			return nil, false, lookupError("find user", findErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, writeError("create emergency user", err)
	}
	logger.GlobalLogger.Printf("emergency booking created account %s", user.ID.Hex())
	return user, true, nil
}

func (s *AppointmentService) sendEmergencyConfirmation(user *models.User, appointment models.Appointment, created bool) {
	msg, err := mailer.EmergencyMessage(user.Email, user.Name, appointment.Date, appointment.Reason, created)
	if err != nil {
		logger.GlobalLogger.Errorf("render emergency email for %s: %v", user.ID.Hex(), err)
		return
	}
	if _, err := s.mail.Enqueue(msg); err != nil {
		logger.GlobalLogger.Errorf("queue emergency email for %s: %v", user.ID.Hex(), err)
	}
}

func (s *AppointmentService) save(ctx context.Context, user *models.User) error {
	if err := s.users.Save(ctx, user); err != nil {
		return writeError("save user", err)
	}
	if err := s.profiles.Invalidate(ctx, user.ID.Hex()); err != nil {
		logger.GlobalLogger.Warnf("failed to invalidate profile cache for %s: %v", user.ID.Hex(), err)
	}
	return nil
}
