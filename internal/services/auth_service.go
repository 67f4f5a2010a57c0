package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"medspace-api/internal/auth"
	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/mailer"
	"medspace-api/internal/models"
	"medspace-api/internal/repositories"
	"medspace-api/pkg/config"
	"medspace-api/pkg/logger"
)

var (
	dummyHash     string
	dummyHashOnce sync.Once
)

// burnPasswordCheck keeps the unknown-email path as slow as a wrong password.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("medspace-unknown-account")
	})
	auth.CheckPassword(dummyHash, password)
}

type AuthService struct {
	users    repositories.UserRepository
	resets   repositories.ResetStore
	profiles repositories.ProfileCache
	mail     mailer.Queue
	cfg      *config.Config
}

func NewAuthService(
	users repositories.UserRepository,
	resets repositories.ResetStore,
	profiles repositories.ProfileCache,
	mail mailer.Queue,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:    users,
		resets:   resets,
		profiles: profiles,
		mail:     mail,
		cfg:      cfg,
	}
}

func invalidCredentials() *apperrors.AppError {
	return apperrors.NewAppError("invalid credentials", apperrors.MsgInvalidCredentials,
		apperrors.ErrCodeInvalidCredentials, http.StatusBadRequest, nil)
}

// Register stores a new local account. No token is issued.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, emailTaken()
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := hashPassword("password", req.Password)
	if err != nil {
		return nil, err
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
		Role:           models.RoleUser,
		AuthProvider:   models.ProviderLocal,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, writeError("create user", err)
	}
	return user, nil
}

// Login returns a signed token. Unknown email and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			burnPasswordCheck(password)
			return "", invalidCredentials()
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", invalidCredentials()
	}
	if user.PasswordResetRequired {
		return "", apperrors.NewAppError("login blocked until password reset", apperrors.MsgPasswordResetRequired,
			apperrors.ErrCodePasswordResetRequired, http.StatusForbidden, nil)
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token, err := auth.GenerateJWT(user.ID.Hex(), s.cfg.JWT.Secret, s.cfg.JWT.TTL)
	if err != nil {
		return "", apperrors.Internal("generate token", err)
	}
	return token, nil
}

// LoginWithOAuth signs in the account matching the provider email, creating it on first use.
func (s *AuthService) LoginWithOAuth(ctx context.Context, profile models.OAuthProfile) (string, *models.User, error) {
	if profile.Email == "" {
		return "", nil, apperrors.Validation([]apperrors.FieldError{{Field: "email", Message: "provider did not return an email address"}})
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.createOAuthUser(ctx, profile)
		if err != nil {
			return "", nil, err
		}
	default:
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) createOAuthUser(ctx context.Context, profile models.OAuthProfile) (*models.User, error) {
	suffix, err := auth.RandomPassword(16)
	if err != nil {
		return nil, apperrors.Internal("generate password", err)
	}
	hash, err := auth.HashPassword(profile.ProviderID + suffix)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}

	name := profile.DisplayName
	if name == "" {
		name = "Google User"
	}
	provider := profile.Provider
	if provider == "" {
		provider = models.ProviderGoogle
	}
	now := time.Now().UTC()

	user := &models.User{
		Name:     name,
		Email:    profile.Email,
		Password: hash,
		Phone:    "0000000000",
		DOB:      &now,
		Gender:   "Other",
		Address: &models.Address{
			Street:     "Unknown",
			City:       "Unknown",
			State:      "Unknown",
			PostalCode: "000000",
		},
		MedicalHistory: []string{},
		Role:           models.RoleUser,
		AuthProvider:   provider,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			// a concurrent callback created it first
			return s.users.FindByEmail(ctx, profile.Email)
		}
		return nil, writeError("create oauth user", err)
	}
	logger.GlobalLogger.Printf("created %s account for %s", provider, user.Email)
	return user, nil
}

// RequestPasswordReset stores a fresh OTP on the user and queues it for delivery.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFound(apperrors.ErrCodeUserNotFound, apperrors.MsgEmailNotFound)
		}
		return fmt.Errorf("find user: %w", err)
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return apperrors.Internal("generate otp", err)
	}
	expiry := time.Now().Add(s.cfg.Auth.OTPTTL).UTC()
	user.OTP, user.OTPExpiry = otp, &expiry
	if err := s.users.Update(ctx, user, "otp", "otpExpiry"); err != nil {
		return lookupError("store otp", err)
	}

	// an earlier verification must not authorise a reset for this new code
	if _, err := s.resets.ConsumeVerified(ctx, user.Email); err != nil {
		return fmt.Errorf("clear reset marker: %w", err)
	}

	msg, err := mailer.OTPMessage(user.Email, otp, s.cfg.Auth.OTPTTL)
	if err != nil {
		return apperrors.Internal("render otp email", err)
	}
	jobID, err := s.mail.Enqueue(msg)
	if err != nil {
		return apperrors.NewAppError("queue otp email", apperrors.MsgServiceUnavailable,
			apperrors.ErrCodeServiceUnavailable, http.StatusServiceUnavailable, err)
	}
	logger.GlobalLogger.Debugf("otp for user %s queued as mail job %s", user.ID.Hex(), jobID)
	return nil
}

// VerifyOTP checks the code and expiry, clears the code and opens a short reset window.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return lookupError("find user", err)
	}

	if !otpMatches(user, otp, time.Now()) {
		return apperrors.BadRequest(apperrors.ErrCodeInvalidOTP, apperrors.MsgInvalidOTP)
	}

	user.ClearOTP()
	if err := s.users.Update(ctx, user, "otp", "otpExpiry"); err != nil {
		return lookupError("clear otp", err)
	}
	if err := s.resets.MarkVerified(ctx, user.Email, s.cfg.Auth.ResetWindowTTL); err != nil {
		return fmt.Errorf("mark reset verified: %w", err)
	}
	return nil
}

func otpMatches(user *models.User, otp string, now time.Time) bool {
	if user.OTP == "" || user.OTPExpiry == nil {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user.OTP), []byte(otp)) != 1 {
		return false
	}
	return now.Before(*user.OTPExpiry)
}

// ResetPassword requires a verification from VerifyOTP and consumes it.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return lookupError("find user", err)
	}

	// hash first so a rejected password leaves the verified window open
	hash, err := hashPassword("newPassword", newPassword)
	if err != nil {
		return err
	}

	verified, err := s.resets.ConsumeVerified(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("consume reset marker: %w", err)
	}
	if !verified {
		return apperrors.BadRequest(apperrors.ErrCodeResetNotVerified, apperrors.MsgResetNotVerified)
	}
	user.Password = hash
	user.PasswordResetRequired = false
	user.ClearOTP()
	if err := s.users.Update(ctx, user, "password", "passwordResetRequired", "otp", "otpExpiry"); err != nil {
		return lookupError("update password", err)
	}
	if err := s.profiles.Invalidate(ctx, user.ID.Hex()); err != nil {
		logger.GlobalLogger.Warnf("failed to invalidate profile cache for %s: %v", user.ID.Hex(), err)
	}
	return nil
}
