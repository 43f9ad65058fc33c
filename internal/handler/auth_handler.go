package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/response"
	"github.com/quizcraft/quizcraft-backend/internal/service"
	"github.com/quizcraft/quizcraft-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /api/v1/auth/register
// Creates an unverified account and sends a verification code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

// Verify godoc
// POST /api/v1/auth/verify
// Confirms the emailed verification code.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.authService.Verify(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Account verified successfully"})
}

// Login godoc
// POST /api/v1/auth/login
// Exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, token)
}

// RequestReset godoc
// POST /api/v1/auth/request-reset
// Sends a password reset code. Responds identically for unknown emails.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req model.RequestResetRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.authService.RequestReset(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "If the email exists, a reset code has been sent"})
}

// ResetPassword godoc
// POST /api/v1/auth/reset-password
// Confirms a reset code and sets the new password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Password reset successfully"})
}
