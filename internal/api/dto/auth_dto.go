package dto

import "github.com/pluglr/auth-service/internal/models"

// ==============================================
// AUTH REQUEST DTOs
// ==============================================

// RegisterRequest - email/password signup. Blank-string checks happen in
// the service so the error shape matches the rest of the validation.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest - email OTP verification
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// ResendOTPRequest
type ResendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest - initiate password reset via email OTP
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RefreshTokenRequest - mints a refresh token for a user id
type RefreshTokenRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

// ResetPasswordRequest - unauthenticated create-new-password path
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePasswordRequest - user is logged in
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// WelcomeEmailRequest
type WelcomeEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ==============================================
// AUTH RESPONSE DTOs
// ==============================================

// LoginResponse - access token in the body, refresh token via cookie
type LoginResponse struct {
	Token  string             `json:"token"`
	User   *models.PublicUser `json:"user"`
	Status int                `json:"status"`
}

// RefreshTokenResponse
type RefreshTokenResponse struct {
	Message      string `json:"message"`
	RefreshToken string `json:"refresh_token"`
}
