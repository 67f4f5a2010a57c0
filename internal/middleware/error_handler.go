package middleware

import (
	"net/http"

	apperrors "medspace-api/internal/errors"
	"medspace-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached to the context as
// {"error":{"code","message","details"}}. Technical detail only goes to the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperrors.MapError(err)

		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.GlobalLogger.Errorf("Request failed: request_id=%s path=%s method=%s client_ip=%s code=%s error=%v",
				c.GetString(RequestIDKey),
				c.Request.URL.Path,
				c.Request.Method,
				c.ClientIP(),
				appErr.Code,
				err)
		} else {
			logger.GlobalLogger.Debugf("Request rejected: request_id=%s path=%s code=%s reason=%s",
				c.GetString(RequestIDKey),
				c.Request.URL.Path,
				appErr.Code,
				appErr.TechnicalMessage)
		}

		if c.Writer.Written() {
			return
		}

		body := gin.H{
			"message": appErr.UserMessage,
			"code":    appErr.Code,
		}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		if id := c.GetString(RequestIDKey); id != "" {
			body["requestId"] = id
		}
		c.JSON(appErr.HTTPStatus, gin.H{"error": body})
	}
}
