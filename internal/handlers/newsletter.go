package handlers

import (
	"net/http"

	"medspace-api/internal/models"
	"medspace-api/internal/services"
	"medspace-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletterService *services.NewsletterService
}

func NewNewsletterHandler(newsletterService *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body models.SubscribeRequest true "Subscriber email"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.newsletterService.Subscribe(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Subscription successful, confirmation email sent"})
}

// SendMail godoc
// @Summary Broadcast to all subscribers
// @Description Sends to every subscriber and reports the recipients that failed
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body models.BroadcastRequest true "Subject and body"
// @Security BasicAuth
// @Success 200 {object} models.BroadcastResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/send-mail [post]
func (h *NewsletterHandler) SendMail(c *gin.Context) {
	var req models.BroadcastRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	report, err := h.newsletterService.Broadcast(c.Request.Context(), req.Subject, req.Message)
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := "Update sent to all subscribers."
	if len(report.Failed) > 0 {
		message = "Update sent with some failures."
	}
	c.JSON(http.StatusOK, models.BroadcastResponse{Message: message, Report: *report})
}
