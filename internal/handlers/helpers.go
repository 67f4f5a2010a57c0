package handlers

import (
	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/middleware"
	"medspace-api/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUser fetches the authenticated user or records a 401 on the context.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.Unauthorized("no authenticated user on context"))
		return nil, false
	}
	return user, true
}

// ErrorResponse documents the error envelope rendered by middleware.ErrorHandler.
type ErrorResponse struct {
	Error struct {
		Message string                  `json:"message"`
		Code    string                  `json:"code"`
		Details []apperrors.FieldError `json:"details,omitempty"`
	} `json:"error"`
}
