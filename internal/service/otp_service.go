package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pluglr/auth-service/internal/auth"
	"github.com/pluglr/auth-service/internal/models"
	"github.com/pluglr/auth-service/internal/repository"
)

// ==============================================
// REPOSITORY INTERFACE (for testing)
// ==============================================

type VerificationRepositoryInterface interface {
	CreateOTP(ctx context.Context, otp *models.AccountVerification) error
	UpsertOTP(ctx context.Context, otp *models.AccountVerification) error
	GetLatestOTP(ctx context.Context, userID int) (*models.AccountVerification, error)
	DeleteOTP(ctx context.Context, otpID int64) error
	ConsumeOTPAndActivate(ctx context.Context, otpID int64, userID int) error
}

// ==============================================
// OTP SERVICE
// ==============================================

// OTPService owns the one-time-password lifecycle: generation, issuance,
// expiry and single-use consumption.
type OTPService struct {
	verificationRepo VerificationRepositoryInterface
}

func NewOTPService(verificationRepo VerificationRepositoryInterface) *OTPService {
	return &OTPService{verificationRepo: verificationRepo}
}

// ==============================================
// ISSUE / RESEND
// ==============================================

// Issue appends a fresh OTP record for the user with the given TTL.
// Earlier records stay in place; only the newest one is ever checked.
func (s *OTPService) Issue(ctx context.Context, userID int, ttl time.Duration) (*models.AccountVerification, error) {
	otp := &models.AccountVerification{
		UserID:    userID,
		Code:      auth.GenerateOTP(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.verificationRepo.CreateOTP(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to issue OTP: %w", err)
	}

	return otp, nil
}

// Resend replaces the user's current OTP in place (get-or-create), instead
// of appending like Issue does. Verify takes the latest record by creation
// time, so both issuance paths feed the same check.
func (s *OTPService) Resend(ctx context.Context, userID int, ttl time.Duration) (*models.AccountVerification, error) {
	otp := &models.AccountVerification{
		UserID:    userID,
		Code:      auth.GenerateOTP(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.verificationRepo.UpsertOTP(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to resend OTP: %w", err)
	}

	return otp, nil
}

// ==============================================
// VERIFY
// ==============================================

// Check validates a submitted code against the user's latest OTP record
// without consuming it. An expired record is deleted on sight, even when
// the code matches; a mismatched code leaves the record in place so the
// user can retry until expiry.
func (s *OTPService) Check(ctx context.Context, userID int, submittedCode string) (*models.AccountVerification, error) {
	otp, err := s.verificationRepo.GetLatestOTP(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return nil, models.ErrNoOTPFound
		}
		return nil, fmt.Errorf("failed to get latest OTP: %w", err)
	}

	if otp.IsExpired() {
		if err := s.verificationRepo.DeleteOTP(ctx, otp.ID); err != nil {
			return nil, fmt.Errorf("failed to delete expired OTP: %w", err)
		}
		return nil, models.ErrOTPExpired
	}

	if otp.Code != submittedCode {
		return nil, models.ErrOTPInvalid
	}

	return otp, nil
}

// ConsumeAndActivate deletes a checked OTP record and enables its account
// in one transaction. Callers must have validated the record via Check.
func (s *OTPService) ConsumeAndActivate(ctx context.Context, otpID int64, userID int) error {
	if err := s.verificationRepo.ConsumeOTPAndActivate(ctx, otpID, userID); err != nil {
		return fmt.Errorf("failed to consume OTP and activate account: %w", err)
	}
	return nil
}

// Verify validates and consumes the user's latest OTP. On success the
// record is deleted; a second Verify with the same code fails with
// ErrNoOTPFound.
func (s *OTPService) Verify(ctx context.Context, userID int, submittedCode string) error {
	otp, err := s.Check(ctx, userID, submittedCode)
	if err != nil {
		return err
	}

	if err := s.verificationRepo.DeleteOTP(ctx, otp.ID); err != nil {
		return fmt.Errorf("failed to consume OTP: %w", err)
	}

	return nil
}
