package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"medspace-api/internal/auth"
	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/mailer"
	"medspace-api/internal/middleware"
	"medspace-api/internal/models"
	"medspace-api/internal/repositories/inmemory"
	"medspace-api/internal/services"
	"medspace-api/pkg/config"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingQueue struct {
	mu   sync.Mutex
	msgs []mailer.Message
}

func (q *recordingQueue) Enqueue(msg mailer.Message) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
	return "job", nil
}

type failingSender struct {
	fail map[string]bool
}

func (s failingSender) Send(_ context.Context, msg mailer.Message) error {
	if s.fail[msg.To] {
		return errors.New("relay refused")
	}
	return nil
}

type stubProvider struct {
	profile *models.OAuthProfile
	err     error
}

func (p stubProvider) AuthCodeURL(state string) string {
	return "https://accounts.example/consent?state=" + state
}

func (p stubProvider) Exchange(context.Context, string) (*models.OAuthProfile, error) {
	return p.profile, p.err
}

type testServer struct {
	router *gin.Engine
	users  *inmemory.UserRepo
	queue  *recordingQueue
}

func newTestServer(t *testing.T, provider IdentityProvider, failing ...string) *testServer {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-secret"
	cfg.JWT.TTL = time.Hour
	cfg.Auth.OTPTTL = 10 * time.Minute
	cfg.Auth.ResetWindowTTL = 10 * time.Minute
	cfg.Mail.BroadcastConcurrency = 2
	cfg.Mail.SiteURL = "https://med-space.example/"

	users := inmemory.NewUserRepo()
	profiles := inmemory.NewProfileCache()
	queue := &recordingQueue{}
	fail := map[string]bool{}
	for _, email := range failing {
		fail[email] = true
	}

	authSvc := services.NewAuthService(users, inmemory.NewResetStore(), profiles, queue, cfg)
	authH := NewAuthHandler(authSvc)
	apptH := NewAppointmentHandler(services.NewAppointmentService(users, profiles, queue))
	userH := NewUserHandler(services.NewUserService(users, profiles))
	newsH := NewNewsletterHandler(services.NewNewsletterService(inmemory.NewNewsletterRepo(), queue, failingSender{fail: fail}, cfg))

	r := gin.New()
	r.Use(middleware.ErrorHandler())

	a := r.Group("/auth")
	a.POST("/register", authH.Register)
	a.POST("/login", authH.Login)
	a.POST("/forgot-password", authH.ForgotPassword)
	a.POST("/verify-otp", authH.VerifyOTP)
	a.POST("/reset-password", authH.ResetPassword)
	if provider != nil {
		oauthH := NewOAuthHandler(authSvc, provider, "", false)
		a.GET("/google", oauthH.GoogleLogin)
		a.GET("/google/callback", oauthH.GoogleCallback)
	}

	r.POST("/appointments/emergency", apptH.BookEmergency)
	token := middleware.TokenAuth(cfg.JWT.Secret, users)
	appts := r.Group("/appointments", token)
	appts.POST("", apptH.BookAppointment)
	appts.GET("", apptH.ListAppointments)
	appts.PUT("/:appointmentId", apptH.UpdateAppointment)
	appts.DELETE("/:appointmentId", apptH.DeleteAppointment)

	r.GET("/profile", token, userH.GetProfile)
	r.PUT("/profile", token, userH.UpdateProfile)
	r.POST("/subscribe", newsH.Subscribe)

	admin := r.Group("/admin", middleware.AdminBasicAuth(users))
	admin.POST("/send-mail", newsH.SendMail)
	admin.GET("/users", userH.ListUsers)
	admin.POST("/users", userH.CreateUser)
	admin.GET("/users/:id", userH.GetUser)
	admin.PUT("/users/:id", userH.UpdateUser)
	admin.DELETE("/users/:id", userH.DeleteUser)

	return &testServer{router: r, users: users, queue: queue}
}

type call struct {
	method string
	path   string
	body   interface{}
	token  string
	basic  [2]string
}

func (s *testServer) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := c.body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.basic[0] != "" {
		req.SetBasicAuth(c.basic[0], c.basic[1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
	var body ErrorResponse
	decode(t, w, &body)
	if body.Error.Code != code {
		t.Fatalf("expected code %s, got %s", code, body.Error.Code)
	}
	return body
}

func registration(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":     "Grace Hopper",
		"email":    email,
		"password": "password123",
		"phone":    "+15557654321",
		"dob":      "1985-12-09T00:00:00Z",
		"gender":   "Female",
		"address": map[string]string{
			"street": "12 Navy Rd", "city": "Arlington", "state": "VA", "postalCode": "22201",
		},
		"medicalHistory": []string{"asthma"},
	}
}

func (s *testServer) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	if w := s.do(t, call{method: http.MethodPost, path: "/auth/register", body: registration(email)}); w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	w := s.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]string{"email": email, "password": "password123"}})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	var resp models.LoginResponse
	decode(t, w, &resp)
	return resp.Token
}

func (s *testServer) seedAdmin(t *testing.T) [2]string {
	t.Helper()
	hash, err := auth.HashPassword("admin-pass-1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: hash, Role: models.RoleAdmin}
	if err := s.users.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return [2]string{"admin@example.com", "admin-pass-1"}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "grace@example.com")
	if token == "" {
		t.Fatal("expected a token")
	}

	w := s.do(t, call{method: http.MethodPost, path: "/auth/register", body: registration("GRACE@example.com")})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeEmailTaken)

	w = s.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]string{"email": "grace@example.com", "password": "wrong-password"}})
	wrong := expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeInvalidCredentials)
	w = s.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]string{"email": "nobody@example.com", "password": "wrong-password"}})
	unknown := expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeInvalidCredentials)
	if wrong.Error.Message != unknown.Error.Message {
		t.Errorf("login failures must not reveal which part was wrong: %q vs %q", wrong.Error.Message, unknown.Error.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t, nil)

	body := registration("bad")
	body["password"] = "short"
	w := s.do(t, call{method: http.MethodPost, path: "/auth/register", body: body})
	resp := expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeValidation)
	fields := map[string]bool{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = true
	}
	if !fields["email"] || !fields["password"] {
		t.Errorf("expected email and password violations, got %+v", resp.Error.Details)
	}

	w = s.do(t, call{method: http.MethodPost, path: "/auth/register", body: `{"name": "x",`})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeValidation)

	extra := registration("grace@example.com")
	extra["role"] = "admin"
	w = s.do(t, call{method: http.MethodPost, path: "/auth/register", body: extra})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeValidation)
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestServer(t, nil)
	s.registerAndLogin(t, "grace@example.com")

	w := s.do(t, call{method: http.MethodPost, path: "/auth/forgot-password", body: map[string]string{"email": "nobody@example.com"}})
	expectError(t, w, http.StatusNotFound, apperrors.ErrCodeUserNotFound)

	w = s.do(t, call{method: http.MethodPost, path: "/auth/reset-password", body: map[string]string{"email": "grace@example.com", "newPassword": "brand-new-pass"}})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeResetNotVerified)

	w = s.do(t, call{method: http.MethodPost, path: "/auth/forgot-password", body: map[string]string{"email": "grace@example.com"}})
	if w.Code != http.StatusOK {
		t.Fatalf("forgot: %d %s", w.Code, w.Body.String())
	}
	user, err := s.users.FindByEmail(context.Background(), "grace@example.com")
	if err != nil || len(user.OTP) != 6 {
		t.Fatalf("expected a stored otp, got %+v err=%v", user, err)
	}
	if len(s.queue.msgs) != 1 || !strings.Contains(s.queue.msgs[0].HTML, user.OTP) {
		t.Fatal("expected the otp email to be queued")
	}

	wrongOTP := "000000"
	if user.OTP == wrongOTP {
		wrongOTP = "111111"
	}
	w = s.do(t, call{method: http.MethodPost, path: "/auth/verify-otp", body: map[string]string{"email": "grace@example.com", "otp": wrongOTP}})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeInvalidOTP)

	w = s.do(t, call{method: http.MethodPost, path: "/auth/verify-otp", body: map[string]string{"email": "grace@example.com", "otp": user.OTP}})
	if w.Code != http.StatusOK {
		t.Fatalf("verify: %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, call{method: http.MethodPost, path: "/auth/reset-password", body: map[string]string{"email": "grace@example.com", "newPassword": "brand-new-pass"}})
	if w.Code != http.StatusOK {
		t.Fatalf("reset: %d %s", w.Code, w.Body.String())
	}

	// the verification is single use
	w = s.do(t, call{method: http.MethodPost, path: "/auth/reset-password", body: map[string]string{"email": "grace@example.com", "newPassword": "another-pass-1"}})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeResetNotVerified)

	w = s.do(t, call{method: http.MethodPost, path: "/auth/login", body: map[string]string{"email": "grace@example.com", "password": "brand-new-pass"}})
	if w.Code != http.StatusOK {
		t.Fatalf("login with new password: %d %s", w.Code, w.Body.String())
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "grace@example.com")

	w := s.do(t, call{method: http.MethodGet, path: "/appointments"})
	expectError(t, w, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)

	w = s.do(t, call{method: http.MethodPost, path: "/appointments", token: token, body: map[string]string{
		"date": "2031-03-04T10:00:00Z", "reason": "checkup", "status": "confirmed",
	}})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}
	var booked models.AppointmentResponse
	decode(t, w, &booked)
	if booked.Appointment.Status != models.StatusPending {
		t.Errorf("new appointments must be pending, got %s", booked.Appointment.Status)
	}
	id := booked.Appointment.ID.Hex()

	w = s.do(t, call{method: http.MethodGet, path: "/appointments", token: token})
	var list []models.Appointment
	decode(t, w, &list)
	if len(list) != 1 || list[0].ID.Hex() != id {
		t.Fatalf("unexpected list %+v", list)
	}

	w = s.do(t, call{method: http.MethodPut, path: "/appointments/" + id, token: token, body: map[string]string{
		"date": "2031-03-05T10:00:00Z", "reason": "follow-up", "status": "confirmed",
	}})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var updated models.Appointment
	decode(t, w, &updated)
	if updated.Status != "confirmed" || updated.Reason != "follow-up" {
		t.Errorf("update not applied: %+v", updated)
	}

	w = s.do(t, call{method: http.MethodDelete, path: "/appointments/not-an-id", token: token})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeInvalidID)
	w = s.do(t, call{method: http.MethodDelete, path: "/appointments/64b7f0f0f0f0f0f0f0f0f0f0", token: token})
	expectError(t, w, http.StatusNotFound, apperrors.ErrCodeAppointmentNotFound)

	w = s.do(t, call{method: http.MethodDelete, path: "/appointments/" + id, token: token})
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, call{method: http.MethodGet, path: "/appointments", token: token})
	decode(t, w, &list)
	if len(list) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(list))
	}
}

func TestAppointmentsAreScopedToCaller(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.registerAndLogin(t, "alice@example.com")
	bob := s.registerAndLogin(t, "bob@example.com")

	w := s.do(t, call{method: http.MethodPost, path: "/appointments", token: alice, body: map[string]string{"date": "2031-03-04T10:00:00Z", "reason": "checkup"}})
	var booked models.AppointmentResponse
	decode(t, w, &booked)

	w = s.do(t, call{method: http.MethodDelete, path: "/appointments/" + booked.Appointment.ID.Hex(), token: bob})
	expectError(t, w, http.StatusNotFound, apperrors.ErrCodeAppointmentNotFound)
}

func TestEmergencyBooking(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(t, call{method: http.MethodPost, path: "/appointments/emergency", body: map[string]interface{}{
		"name": "Walk In", "email": "walkin@example.com", "age": 42, "gender": "Male",
		"contact": "+15550001111", "reason": "chest pain", "date": "2031-01-01T08:00:00Z",
	}})
	if w.Code != http.StatusOK {
		t.Fatalf("emergency: %d %s", w.Code, w.Body.String())
	}
	var resp models.AppointmentResponse
	decode(t, w, &resp)
	if resp.Appointment.Status != models.StatusEmergency {
		t.Errorf("status: got %s", resp.Appointment.Status)
	}

	user, err := s.users.FindByEmail(context.Background(), "walkin@example.com")
	if err != nil {
		t.Fatalf("emergency account not created: %v", err)
	}
	if !user.PasswordResetRequired || user.Age != 42 {
		t.Errorf("unexpected emergency account %+v", user)
	}

	w = s.do(t, call{method: http.MethodPost, path: "/appointments/emergency", body: map[string]interface{}{"name": "Walk In"}})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeValidation)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.registerAndLogin(t, "grace@example.com")

	w := s.do(t, call{method: http.MethodGet, path: "/profile", token: token})
	var profile models.User
	decode(t, w, &profile)
	if profile.Email != "grace@example.com" || profile.Role != models.RoleUser {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if strings.Contains(w.Body.String(), `"password":`) {
		t.Error("profile must not expose the password hash")
	}

	w = s.do(t, call{method: http.MethodPut, path: "/profile", token: token, body: map[string]string{"role": "admin"}})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeValidation)

	w = s.do(t, call{method: http.MethodPut, path: "/profile", token: token, body: map[string]string{"name": "Grace B. Hopper"}})
	if w.Code != http.StatusOK {
		t.Fatalf("update profile: %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, call{method: http.MethodGet, path: "/profile", token: token})
	decode(t, w, &profile)
	if profile.Name != "Grace B. Hopper" {
		t.Errorf("profile cache served stale name %q", profile.Name)
	}
}

func TestAdminUsers(t *testing.T) {
	s := newTestServer(t, nil)
	creds := s.seedAdmin(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		s.registerAndLogin(t, email)
	}

	w := s.do(t, call{method: http.MethodGet, path: "/admin/users?limit=2"})
	expectError(t, w, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)
	w = s.do(t, call{method: http.MethodGet, path: "/admin/users?limit=2", basic: [2]string{"a@example.com", "password123"}})
	expectError(t, w, http.StatusForbidden, apperrors.ErrCodeForbidden)

	w = s.do(t, call{method: http.MethodGet, path: "/admin/users?limit=2", basic: creds})
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var page models.PaginatedUsersResponse
	decode(t, w, &page)
	if page.Total != 4 || len(page.Users) != 2 || page.Next == "" || page.Prev != "" {
		t.Fatalf("unexpected page %+v", page)
	}

	w = s.do(t, call{method: http.MethodGet, path: "/admin/users?limit=500", basic: creds})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeValidation)

	patient, err := s.users.FindByEmail(context.Background(), "c@example.com")
	if err != nil {
		t.Fatalf("find patient: %v", err)
	}
	target := patient.ID.Hex()
	w = s.do(t, call{method: http.MethodPut, path: "/admin/users/" + target, basic: creds, body: map[string]string{"role": "admin"}})
	if w.Code != http.StatusOK {
		t.Fatalf("admin update: %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, call{method: http.MethodDelete, path: "/admin/users/" + target, basic: creds})
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, call{method: http.MethodGet, path: "/admin/users/" + target, basic: creds})
	expectError(t, w, http.StatusNotFound, apperrors.ErrCodeUserNotFound)
	w = s.do(t, call{method: http.MethodGet, path: "/admin/users/xyz", basic: creds})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeInvalidID)
}

func TestNewsletter(t *testing.T) {
	s := newTestServer(t, nil, "bounce@example.com")
	creds := s.seedAdmin(t)

	w := s.do(t, call{method: http.MethodPost, path: "/admin/send-mail", basic: creds, body: map[string]string{"subject": "Hi", "message": "Hello"}})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeNoSubscribers)

	for _, email := range []string{"reader@example.com", "bounce@example.com"} {
		w = s.do(t, call{method: http.MethodPost, path: "/subscribe", body: map[string]string{"email": email}})
		if w.Code != http.StatusOK {
			t.Fatalf("subscribe %s: %d %s", email, w.Code, w.Body.String())
		}
	}
	w = s.do(t, call{method: http.MethodPost, path: "/subscribe", body: map[string]string{"email": "reader@example.com"}})
	expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeAlreadySubscribed)

	w = s.do(t, call{method: http.MethodPost, path: "/admin/send-mail", basic: [2]string{"admin@example.com", "wrong"}, body: map[string]string{"subject": "Hi", "message": "Hello"}})
	expectError(t, w, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)

	w = s.do(t, call{method: http.MethodPost, path: "/admin/send-mail", basic: creds, body: map[string]string{"subject": "Hi", "message": "Hello"}})
	if w.Code != http.StatusOK {
		t.Fatalf("send-mail: %d %s", w.Code, w.Body.String())
	}
	var resp models.BroadcastResponse
	decode(t, w, &resp)
	if resp.Report.Total != 2 || resp.Report.Sent != 1 || len(resp.Report.Failed) != 1 || resp.Report.Failed[0].Email != "bounce@example.com" {
		t.Fatalf("unexpected report %+v", resp.Report)
	}
}

func TestGoogleCallback(t *testing.T) {
	s := newTestServer(t, stubProvider{profile: &models.OAuthProfile{
		Provider: models.ProviderGoogle, ProviderID: "42", DisplayName: "Oauth Person", Email: "oauth@example.com",
	}})

	w := s.do(t, call{method: http.MethodGet, path: "/auth/google"})
	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	var state string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == oauthStateCookie {
			state = ck.Value
		}
	}
	if state == "" || !strings.Contains(w.Header().Get("Location"), state) {
		t.Fatal("expected state cookie matching the consent url")
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=forged&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	expectError(t, w, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized)

	req = httptest.NewRequest(http.MethodGet, "/auth/google/callback?state="+state+"&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("callback: %d %s", w.Code, w.Body.String())
	}
	var resp models.LoginResponse
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	user, err := s.users.FindByEmail(context.Background(), "oauth@example.com")
	if err != nil || user.AuthProvider != models.ProviderGoogle {
		t.Fatalf("expected a google account, got %+v err=%v", user, err)
	}
}

func TestRegisterPasswordByteLimit(t *testing.T) {
	s := newTestServer(t, nil)

	body := registration("grace@example.com")
	body["password"] = strings.Repeat("a", 80)
	w := s.do(t, call{method: http.MethodPost, path: "/auth/register", body: body})
	resp := expectError(t, w, http.StatusBadRequest, apperrors.ErrCodeValidation)
	if len(resp.Error.Details) != 1 || resp.Error.Details[0].Field != "password" {
		t.Errorf("expected a single password violation, got %+v", resp.Error.Details)
	}

	body["password"] = strings.Repeat("a", 72)
	w = s.do(t, call{method: http.MethodPost, path: "/auth/register", body: body})
	if w.Code != http.StatusCreated {
		t.Fatalf("72 byte password: %d %s", w.Code, w.Body.String())
	}
}
