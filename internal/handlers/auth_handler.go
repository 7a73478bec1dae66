package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pluglr/auth-service/internal/api/dto"
	"github.com/pluglr/auth-service/internal/auth"
	"github.com/pluglr/auth-service/internal/models"
)

// ==============================================
// SERVICE INTERFACE (for testing)
// ==============================================

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	VerifyAndActivate(ctx context.Context, email, code string) (*models.User, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, string, error)
	RefreshToken(userID int) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	SendWelcomeEmail(email string) error
}

// ==============================================
// HANDLER (HTTP Layer ONLY)
// ==============================================

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// ==============================================
// ENDPOINTS
// ==============================================

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid JSON data")
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{
		Message: "OTP sent to your email.",
		Status:  http.StatusCreated,
	})
}

// Login handles POST /api/v1/auth/login. The access token travels in the
// body, the refresh token in an httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid JSON data")
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("jwt", refreshToken, int(auth.RefreshTokenTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:  accessToken,
		User:   user.ToPublic(),
		Status: http.StatusOK,
	})
}

// VerifyOTP handles POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Email and OTP are required")
		return
	}

	if _, err := h.service.VerifyAndActivate(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "OTP verified successfully, account enabled.",
		Status:  http.StatusOK,
	})
}

// ResendOTP handles POST /api/v1/auth/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.ResendOTPRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Email is required")
		return
	}

	if err := h.service.ResendOTP(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "A new OTP has been sent to your email.",
		Status:  http.StatusOK,
	})
}

// ForgotPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Email is required")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Message has been sent to the email you provided.",
		Status:  http.StatusOK,
	})
}

// RefreshToken handles POST /api/v1/auth/token/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "User ID is required.")
		return
	}

	token, err := h.service.RefreshToken(req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		Message:      "Refresh token generated successfully.",
		RefreshToken: token,
	})
}

// ResetPassword handles POST /api/v1/auth/create-new-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Invalid JSON data")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Password updated successfully.",
		Status:  http.StatusOK,
	})
}

// SendWelcomeEmail handles POST /api/v1/send-welcome-email
func (h *AuthHandler) SendWelcomeEmail(c *gin.Context) {
	var req dto.WelcomeEmailRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "Email is required")
		return
	}

	if err := h.service.SendWelcomeEmail(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Welcome email sent successfully!",
		Status:  http.StatusOK,
	})
}

// ==============================================
// ROUTE REGISTRATION
// ==============================================

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.POST("/send-welcome-email", h.SendWelcomeEmail)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/verify-otp", h.VerifyOTP)
			authGroup.POST("/resend-otp", h.ResendOTP)
			authGroup.POST("/reset-password", h.ForgotPassword)
			authGroup.POST("/token/refresh", h.RefreshToken)
			authGroup.POST("/create-new-password", h.ResetPassword)
		}
	}
}

// ==============================================
// HELPER FUNCTIONS
// ==============================================

// respondError sends an error JSON response. The status is duplicated in
// the body, which is what the consuming client expects.
func respondError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Error:  message,
		Code:   code,
		Status: statusCode,
	})
}

// respondServiceError maps service errors to HTTP status codes
func respondServiceError(c *gin.Context, err error) {
	statusCode, code, message := mapServiceError(err)
	respondError(c, statusCode, code, message)
}

// mapServiceError maps domain errors to HTTP status codes, stable error
// codes and user-facing messages. Unrecognized errors come back as a
// generic 500 without leaking internals.
func mapServiceError(err error) (int, string, string) {
	switch {
	// Validation errors (400 Bad Request)
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error()
	case errors.Is(err, models.ErrPasswordMismatch):
		return http.StatusBadRequest, models.ErrCodePasswordMismatch, "Passwords do not match."

	// OTP errors (400 Bad Request)
	case errors.Is(err, models.ErrNoOTPFound):
		return http.StatusBadRequest, models.ErrCodeOTPNotFound, "No OTP found for this user"
	case errors.Is(err, models.ErrOTPExpired):
		return http.StatusBadRequest, models.ErrCodeOTPExpired, "OTP has expired"
	case errors.Is(err, models.ErrOTPInvalid):
		return http.StatusBadRequest, models.ErrCodeOTPInvalid, "Invalid OTP"

	// Credential errors
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, models.ErrCodeInvalidCredentials, "Invalid email or password."
	case errors.Is(err, models.ErrAccountUnverified):
		return http.StatusForbidden, models.ErrCodeAccountUnverified, "Your account is unverified. Please verify your account."

	// Conflict (409)
	case errors.Is(err, models.ErrEmailTaken):
		return http.StatusConflict, models.ErrCodeEmailTaken, "User already taken this email address.*"

	// Not found (404)
	case errors.Is(err, models.ErrAccountNotFound):
		return http.StatusNotFound, models.ErrCodeNotFound, "User not found"

	// Default (500 Internal Server Error)
	default:
		return http.StatusInternalServerError, models.ErrCodeInternalError, "Internal server error"
	}
}
