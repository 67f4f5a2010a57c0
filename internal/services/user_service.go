package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/internal/validators"
	"medspace-api/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const profileTTL = 10 * time.Minute

type UserService struct {
	users    repositories.UserRepository
	profiles repositories.ProfileCache
}

func NewUserService(users repositories.UserRepository, profiles repositories.ProfileCache) *UserService {
	return &UserService{users: users, profiles: profiles}
}

// Create is the admin variant of registration; the role defaults to user.
func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, emailTaken()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := hashPassword("password", req.Password)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	dob := req.DOB.UTC()

	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hash,
		Phone:          req.Phone,
		DOB:            &dob,
		Gender:         req.Gender,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Role:           role,
		AuthProvider:   models.ProviderLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, writeError("create user", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := validators.ObjectID("id", id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, lookupError("find user", err)
	}
	return user, nil
}

// Profile serves the caller's own document, from cache when possible.
func (s *UserService) Profile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	cached, found, err := s.profiles.Get(ctx, id.Hex())
	if err != nil {
		logger.GlobalLogger.Warnf("profile cache read failed for %s: %v", id.Hex(), err)
	}
	if found {
		return cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("find user", err)
	}
	if err := s.profiles.Set(ctx, user, profileTTL); err != nil {
		logger.GlobalLogger.Warnf("profile cache write failed for %s: %v", id.Hex(), err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	users, total, err := s.users.FindWithPagination(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Update applies a partial update. Self-service and admin edits both land here.
func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("find user", err)
	}

	if req.Email != nil && !sameEmail(*req.Email, user.Email) {
		if _, err := s.users.FindByEmail(ctx, *req.Email); err == nil {
			return nil, emailTaken()
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := hashPassword("password", *req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
		user.PasswordResetRequired = false
	}
	applyProfileFields(user, req)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, writeError("save user", err)
	}
	s.invalidate(ctx, user.ID)
	return user, nil
}

func applyProfileFields(user *models.User, req *models.UpdateUserRequest) {
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.DOB != nil {
		dob := req.DOB.UTC()
		user.DOB = &dob
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Address != nil {
		addr := *req.Address
		user.Address = &addr
	}
	if req.MedicalHistory != nil {
		user.MedicalHistory = req.MedicalHistory
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := validators.ObjectID("id", id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		return lookupError("delete user", err)
	}
	s.invalidate(ctx, oid)
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.profiles.Invalidate(ctx, id.Hex()); err != nil {
		logger.GlobalLogger.Warnf("failed to invalidate profile cache for %s: %v", id.Hex(), err)
	}
}
