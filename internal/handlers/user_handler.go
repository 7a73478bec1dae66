package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pluglr/auth-service/internal/api/dto"
	"github.com/pluglr/auth-service/internal/middleware"
	"github.com/pluglr/auth-service/internal/models"
)

// ==============================================
// SERVICE INTERFACES (for testing)
// ==============================================

type UserService interface {
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	CompleteProfile(ctx context.Context, userID int, req dto.CompleteProfileRequest) error
}

type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID int, req dto.ChangePasswordRequest) error
}

// ==============================================
// HANDLER (HTTP Layer ONLY)
// ==============================================

type UserHandler struct {
	users     UserService
	passwords PasswordChanger
}

func NewUserHandler(users UserService, passwords PasswordChanger) *UserHandler {
	return &UserHandler{users: users, passwords: passwords}
}

// ==============================================
// ENDPOINTS
// ==============================================

// UpdatePassword handles PUT /api/v1/user/update-password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid JSON data")
		return
	}

	if err := h.passwords.ChangePassword(c.Request.Context(), userID, req); err != nil {
		// The client contract reports a wrong old password as a plain 400,
		// not a credentials failure, and names the new-password pair in the
		// mismatch message.
		if errors.Is(err, models.ErrInvalidCredentials) {
			respondError(c, http.StatusBadRequest, models.ErrCodeInvalidCredentials, "Old password is incorrect.")
			return
		}
		if errors.Is(err, models.ErrPasswordMismatch) {
			respondError(c, http.StatusBadRequest, models.ErrCodePasswordMismatch, "New passwords do not match.")
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Password updated successfully.",
		Status:  http.StatusOK,
	})
}

// CompleteProfile handles PUT /api/v1/user/complete-profile
func (h *UserHandler) CompleteProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid JSON data")
		return
	}

	if err := h.users.CompleteProfile(c.Request.Context(), userID, req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Profile updated successfully.",
		Status:  http.StatusOK,
	})
}

// GetUserByID handles GET /api/v1/user/id/:user_id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "user_id must be a positive number")
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserDetailResponse{Data: user.ToPublic()})
}

// ==============================================
// ROUTE REGISTRATION
// ==============================================

// RegisterRoutes mounts the authenticated user routes behind the provided
// auth middleware.
func (h *UserHandler) RegisterRoutes(router *gin.Engine, authRequired gin.HandlerFunc) {
	user := router.Group("/api/v1/user", authRequired)
	{
		user.PUT("/update-password", h.UpdatePassword)
		user.PUT("/complete-profile", h.CompleteProfile)
		user.GET("/id/:user_id", h.GetUserByID)
	}
}
