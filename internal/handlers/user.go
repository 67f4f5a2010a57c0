package handlers

import (
	"net/http"

	apperrors "medspace-api/internal/errors"
	"medspace-api/internal/models"
	"medspace-api/internal/services"
	"medspace-api/internal/utils"
	"medspace-api/internal/validators"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile godoc
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := h.userService.Profile(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Partial update. The role field cannot be changed here.
// @Tags Profile
// @Accept json
// @Produce json
// @Param user body models.UpdateUserRequest true "Fields to change"
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	if req.Role != nil {
		_ = c.Error(apperrors.Validation([]apperrors.FieldError{{Field: "role", Message: "role cannot be changed from the profile"}}))
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), user.ID, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size" default(10)
// @Security BasicAuth
// @Success 200 {object} models.PaginatedUsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, limit, err := utils.ParsePagination(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(err)
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), offset, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	next, prev := utils.PageLinks(c.Request.URL.Path, offset, limit, total, c.Request.URL.Query())
	c.JSON(http.StatusOK, models.PaginatedUsersResponse{
		Users:  users,
		Total:  total,
		Offset: offset,
		Limit:  limit,
		Next:   next,
		Prev:   prev,
	})
}

// CreateUser godoc
// @Summary Create a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param user body models.CreateUserRequest true "User data"
// @Security BasicAuth
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary Get a user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Security BasicAuth
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body models.UpdateUserRequest true "Fields to change"
// @Security BasicAuth
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := validators.ObjectID("id", c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req models.UpdateUserRequest
	if err := validators.Bind(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Security BasicAuth
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "User deleted successfully"})
}
