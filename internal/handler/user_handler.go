package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizcraft/quizcraft-backend/internal/middleware"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/response"
	"github.com/quizcraft/quizcraft-backend/internal/service"
	"github.com/quizcraft/quizcraft-backend/internal/validator"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile godoc
// GET /api/v1/users/:user_id
func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.Principal(c)

	profile, err := h.userService.Get(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// UpdateProfile godoc
// PUT /api/v1/users/:user_id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.Principal(c)

	var req model.UpdateProfileRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	profile, err := h.userService.Update(c.Request.Context(), user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

// DeleteProfile godoc
// DELETE /api/v1/users/:user_id
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	user := middleware.Principal(c)

	if err := h.userService.Delete(c.Request.Context(), user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
