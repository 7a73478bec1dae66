package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pluglr/auth-service/internal/api/dto"
	"github.com/pluglr/auth-service/internal/auth"
	"github.com/pluglr/auth-service/internal/models"
	"github.com/pluglr/auth-service/internal/repository"
)

// ==============================================
// REPOSITORY INTERFACE (for testing)
// ==============================================

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) error
}

// ==============================================
// AUTH SERVICE
// ==============================================

// AuthService drives the account lifecycle: registration, OTP verification,
// login and password mutation. An account starts disabled and becomes
// enabled exactly once, after a successful OTP check; there is no
// transition back.
type AuthService struct {
	userRepo UserRepositoryInterface
	otp      *OTPService
	tokens   *auth.TokenService
	mailer   Mailer
}

func NewAuthService(
	userRepo UserRepositoryInterface,
	otp *OTPService,
	tokens *auth.TokenService,
	mailer Mailer,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otp:      otp,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// ==============================================
// REGISTER
// ==============================================

// Register creates a disabled account, issues a 30-minute OTP and sends it
// by email. Email delivery is fire-and-forget: a failed send never rolls
// back the account, the resend endpoint covers recovery.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty or null", models.ErrInvalidInput)
	}
	if isBlank(req.Password) {
		return nil, fmt.Errorf("%w: password cannot be empty or null", models.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// Two registrations can race past the existence check; the unique
		// index is the source of truth.
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	otp, err := s.otp.Issue(ctx, user.ID, models.RegistrationOTPTTL)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.mailer.SendOTPEmail(user.Email, otp.Code); err != nil {
			log.Printf("failed to send OTP email to %s: %v", user.Email, err)
		}
	}()

	return user, nil
}

// ==============================================
// OTP VERIFICATION
// ==============================================

// VerifyAndActivate consumes the account's latest OTP and enables the
// account. Consumption and activation commit as one transaction.
func (s *AuthService) VerifyAndActivate(ctx context.Context, email, code string) (*models.User, error) {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	otp, err := s.otp.Check(ctx, user.ID, code)
	if err != nil {
		return nil, err
	}

	if err := s.otp.ConsumeAndActivate(ctx, otp.ID, user.ID); err != nil {
		return nil, err
	}

	user.Enabled = true
	return user, nil
}

// ResendOTP replaces the account's current verification code and emails
// the new one.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := s.otp.Resend(ctx, user.ID, models.RegistrationOTPTTL)
	if err != nil {
		return err
	}

	if err := s.mailer.SendOTPEmail(user.Email, otp.Code); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}

// ==============================================
// LOGIN
// ==============================================

// Login checks credentials, gates on the account being enabled, and issues
// an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, string, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return nil, "", "", fmt.Errorf("%w: email cannot be empty or null", models.ErrInvalidInput)
	}
	if isBlank(req.Password) {
		return nil, "", "", fmt.Errorf("%w: password cannot be empty or null", models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", "", models.ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", "", models.ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, "", "", models.ErrAccountUnverified
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

// RefreshToken mints a refresh token for a raw user id. The caller is not
// authenticated; this mirrors the contract the consuming client already
// depends on.
func (s *AuthService) RefreshToken(userID int) (string, error) {
	token, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return token, nil
}

// ==============================================
// PASSWORD MANAGEMENT
// ==============================================

// ForgotPassword issues a 1-hour reset OTP and emails it. The code is
// checked through the same verify endpoint as registration codes.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := s.otp.Resend(ctx, user.ID, models.PasswordResetOTPTTL)
	if err != nil {
		return err
	}

	if err := s.mailer.SendResetPasswordEmail(user.Email, otp.Code); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword sets a new password for an email without any further proof
// of possession. Kept callable without a prior OTP check to match the
// contract the client depends on.
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty or null", models.ErrInvalidInput)
	}
	if isBlank(req.Password) {
		return fmt.Errorf("%w: password cannot be empty or null", models.ErrInvalidInput)
	}
	if req.Password != req.ConfirmPassword {
		return models.ErrPasswordMismatch
	}

	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ChangePassword rotates a logged-in user's password after re-checking the
// old one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, req dto.ChangePasswordRequest) error {
	if isBlank(req.OldPassword) {
		return fmt.Errorf("%w: old password cannot be empty or null", models.ErrInvalidInput)
	}
	if isBlank(req.NewPassword) {
		return fmt.Errorf("%w: new password cannot be empty or null", models.ErrInvalidInput)
	}
	if req.NewPassword != req.ConfirmPassword {
		return models.ErrPasswordMismatch
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.ErrAccountNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(req.OldPassword, user.PasswordHash) {
		return models.ErrInvalidCredentials
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// ==============================================
// WELCOME EMAIL
// ==============================================

func (s *AuthService) SendWelcomeEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}

	if err := s.mailer.SendWelcomeEmail(email); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}

// ==============================================
// HELPER FUNCTIONS
// ==============================================

func (s *AuthService) getUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// NormalizeEmail trims and lowercases an email so lookups and the unique
// index agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
