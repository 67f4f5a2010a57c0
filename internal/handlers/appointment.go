package handlers

import (
	"net/http"

	"medspace-api/internal/models"
	"medspace-api/internal/services"
	"medspace-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// BookAppointment godoc
// @Summary Book an appointment
// @Description New appointments always start as pending; a status in the body is ignored
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment body models.CreateAppointmentRequest true "Date and reason"
// @Security BearerAuth
// @Success 201 {object} models.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateAppointmentRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	appointment, err := h.appointmentService.Book(c.Request.Context(), user.ID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, models.AppointmentResponse{Message: "Appointment booked successfully", Appointment: *appointment})
}

// ListAppointments godoc
// @Summary List my appointments
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Appointment
// @Failure 401 {object} ErrorResponse
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	appointments, err := h.appointmentService.List(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// UpdateAppointment godoc
// @Summary Update one of my appointments
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointmentId path string true "Appointment ID"
// @Param appointment body models.UpdateAppointmentRequest true "Date, reason and status"
// @Security BearerAuth
// @Success 200 {object} models.Appointment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /appointments/{appointmentId} [put]
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateAppointmentRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	appointment, err := h.appointmentService.Update(c.Request.Context(), user.ID, c.Param("appointmentId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment godoc
// @Summary Cancel one of my appointments
// @Tags Appointments
// @Produce json
// @Param appointmentId path string true "Appointment ID"
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /appointments/{appointmentId} [delete]
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.appointmentService.Delete(c.Request.Context(), user.ID, c.Param("appointmentId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Appointment deleted successfully"})
}

// BookEmergency godoc
// @Summary Book an emergency appointment
// @Description No login required. Unknown emails get an account that must reset its password before logging in.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment body models.EmergencyAppointmentRequest true "Patient and visit details"
// @Success 200 {object} models.AppointmentResponse
// @Failure 400 {object} ErrorResponse
// @Router /appointments/emergency [post]
func (h *AppointmentHandler) BookEmergency(c *gin.Context) {
	var req models.EmergencyAppointmentRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	appointment, err := h.appointmentService.BookEmergency(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.AppointmentResponse{
		Message:     "Emergency appointment booked successfully",
		Appointment: *appointment,
	})
}
