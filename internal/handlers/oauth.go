package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"net/url"

	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/models"
	"medspace-api/internal/services"
	"medspace-api/pkg/logger"
	"medspace-api/pkg/oauth"

	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// IdentityProvider is the authorization-code half of an OAuth provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*models.OAuthProfile, error)
}

type OAuthHandler struct {
	authService *services.AuthService
	provider    IdentityProvider
	// frontendRedirect, when set, receives the token as ?token= instead of a JSON body.
	frontendRedirect string
	secureCookie     bool
}

func NewOAuthHandler(authService *services.AuthService, provider IdentityProvider, frontendRedirect string, secureCookie bool) *OAuthHandler {
	return &OAuthHandler{
		authService:      authService,
		provider:         provider,
		frontendRedirect: frontendRedirect,
		secureCookie:     secureCookie,
	}
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Authentication
// @Success 307
// @Router /auth/google [get]
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	state, err := oauth.NewState()
	if err != nil {
		_ = c.Error(apperrors.Internal("generate oauth state", err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/auth/google", "", h.secureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, h.provider.AuthCodeURL(state))
}

// GoogleCallback godoc
// @Summary Complete Google sign-in
// @Description Finds or creates the account for the Google email and issues a JWT
// @Tags Authentication
// @Produce json
// @Param state query string true "Anti-forgery state"
// @Param code query string true "Authorization code"
// @Success 200 {object} models.LoginResponse
// @Success 302
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	expected, err := c.Cookie(oauthStateCookie)
	state := c.Query("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		_ = c.Error(apperrors.Unauthorized("oauth state mismatch"))
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/auth/google", "", h.secureCookie, true)

	code := c.Query("code")
	if code == "" {
		_ = c.Error(apperrors.Unauthorized("oauth callback without code: " + c.Query("error")))
		return
	}

	profile, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.GlobalLogger.Warnf("google exchange failed: %v", err)
		_ = c.Error(apperrors.Unauthorized("google exchange failed"))
		return
	}

	token, _, err := h.authService.LoginWithOAuth(c.Request.Context(), *profile)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if h.frontendRedirect != "" {
		target, err := url.Parse(h.frontendRedirect)
		if err != nil {
			_ = c.Error(apperrors.Internal("parse frontend redirect", err))
			return
		}
		q := target.Query()
		q.Set("token", token)
		target.RawQuery = q.Encode()
		c.Redirect(http.StatusFound, target.String())
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, Message: "User logged in successfully"})
}
