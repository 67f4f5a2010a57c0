package middleware

import (
	"errors"
	"strings"

	"medspace-api/internal/auth"
	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/models"
	"medspace-api/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserContextKey holds the authenticated *models.User.
const UserContextKey = "user"

// CurrentUser returns the user attached by TokenAuth or AdminBasicAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// TokenAuth verifies a bearer JWT and loads the user it names.
func TokenAuth(secret string, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperrors.Unauthorized("authorization header required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortWith(c, apperrors.Unauthorized("invalid authorization header format"))
			return
		}

		claims, err := auth.ValidateJWT(parts[1], secret)
		if err != nil {
			abortWith(c, apperrors.Unauthorized(err.Error()))
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortWith(c, apperrors.Unauthorized("token subject is not an object id"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				abortWith(c, apperrors.Unauthorized("token user no longer exists"))
				return
			}
			abortWith(c, err)
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// AdminBasicAuth checks an email:password pair against the stored bcrypt hash and requires the admin role.
func AdminBasicAuth(users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok || email == "" {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			abortWith(c, apperrors.Unauthorized("basic credentials required"))
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			abortWith(c, err)
			return
		}
		if user == nil || !auth.CheckPassword(user.Password, password) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			abortWith(c, apperrors.Unauthorized("basic credentials rejected"))
			return
		}
		if !user.IsAdmin() {
			abortWith(c, apperrors.Forbidden("user "+user.ID.Hex()+" is not an admin"))
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}
