package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/mailer"
	"medspace-api/internal/models"
	"medspace-api/internal/repositories/inmemory"
	"medspace-api/pkg/config"
)

type fakeQueue struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (q *fakeQueue) Enqueue(msg mailer.Message) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.msgs = append(q.msgs, msg)
	return "job-1", nil
}

func (q *fakeQueue) last(t *testing.T) mailer.Message {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		t.Fatal("expected a queued message")
	}
	return q.msgs[len(q.msgs)-1]
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
}

func (s *fakeSender) Send(_ context.Context, msg mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[msg.To] {
		return errors.New("550 mailbox unavailable")
	}
	s.sent = append(s.sent, msg.To)
	return nil
}

type fixture struct {
	cfg          *config.Config
	users        *inmemory.UserRepo
	newsletters  *inmemory.NewsletterRepo
	resets       *inmemory.ResetStore
	profiles     *inmemory.ProfileCache
	queue        *fakeQueue
	sender       *fakeSender
	auth         *AuthService
	appointments *AppointmentService
	userSvc      *UserService
	newsletter   *NewsletterService
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 72 * time.Hour
	cfg.Auth.OTPTTL = 10 * time.Minute
	cfg.Auth.ResetWindowTTL = 10 * time.Minute
	cfg.Mail.BroadcastConcurrency = 4
	cfg.Mail.SendTimeout = time.Second
	cfg.Mail.SiteURL = "https://med-space.example/"
	return cfg
}

func newFixture() *fixture {
	f := &fixture{
		cfg:         testConfig(),
		users:       inmemory.NewUserRepo(),
		newsletters: inmemory.NewNewsletterRepo(),
		resets:      inmemory.NewResetStore(),
		profiles:    inmemory.NewProfileCache(),
		queue:       &fakeQueue{},
		sender:      &fakeSender{fail: map[string]bool{}},
	}
	f.auth = NewAuthService(f.users, f.resets, f.profiles, f.queue, f.cfg)
	f.appointments = NewAppointmentService(f.users, f.profiles, f.queue)
	f.userSvc = NewUserService(f.users, f.profiles)
	f.newsletter = NewNewsletterService(f.newsletters, f.queue, f.sender, f.cfg)
	return f
}

func registerRequest(email, password string) *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    email,
		Password: password,
		Phone:    "+15551234567",
		DOB:      time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:   "Female",
		Address:  &models.Address{Street: "1 Main St", City: "London", State: "LDN", PostalCode: "12345"},
	}
}

func (f *fixture) register(t *testing.T, email, password string) *models.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), registerRequest(email, password))
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func requireCode(t *testing.T, err error, status int, code string) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %d %s, got nil", status, code)
	}
	appErr := apperrors.MapError(err)
	if appErr.HTTPStatus != status || appErr.Code != code {
		t.Fatalf("expected %d %s, got %d %s (%v)", status, code, appErr.HTTPStatus, appErr.Code, err)
	}
	return appErr
}
