package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pluglr/auth-service/internal/models"
)

// ==============================================
// ERRORS
// ==============================================

var (
	ErrOTPNotFound = errors.New("OTP not found")
)

// ==============================================
// VERIFICATION REPOSITORY
// ==============================================

type VerificationRepository struct {
	db *pgxpool.Pool
}

func NewVerificationRepository(db *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// ==============================================
// CREATE OTP
// ==============================================

// CreateOTP appends a new verification record for a user. Historical rows
// are kept; lookups always take the most recent one.
func (r *VerificationRepository) CreateOTP(ctx context.Context, otp *models.AccountVerification) error {
	query := `
		INSERT INTO account_verifications (user_id, code, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	row := r.db.QueryRow(ctx, query,
		otp.UserID,
		otp.Code,
		otp.ExpiresAt,
	)

	if err := row.Scan(&otp.ID, &otp.CreatedAt); err != nil {
		return fmt.Errorf("failed to create OTP: %w", err)
	}

	return nil
}

// UpsertOTP replaces the user's current code and expiry in place, creating
// a record if none exists. Used by the resend path; unlike CreateOTP it
// never grows the history.
func (r *VerificationRepository) UpsertOTP(ctx context.Context, otp *models.AccountVerification) error {
	update := `
		UPDATE account_verifications
		SET code = $1, expires_at = $2
		WHERE id = (
			SELECT id FROM account_verifications
			WHERE user_id = $3
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, update, otp.Code, otp.ExpiresAt, otp.UserID).
		Scan(&otp.ID, &otp.CreatedAt)

	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to upsert OTP: %w", err)
	}

	return r.CreateOTP(ctx, otp)
}

// ==============================================
// GET OTP
// ==============================================

// GetLatestOTP returns the most recently created verification record for a
// user, regardless of how it was issued.
func (r *VerificationRepository) GetLatestOTP(ctx context.Context, userID int) (*models.AccountVerification, error) {
	query := `
		SELECT id, user_id, code, created_at, expires_at
		FROM account_verifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp models.AccountVerification
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Code,
		&otp.CreatedAt,
		&otp.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOTPNotFound
		}
		return nil, fmt.Errorf("failed to get OTP: %w", err)
	}

	return &otp, nil
}

// ==============================================
// DELETE OTP
// ==============================================

// DeleteOTP removes a single verification record
func (r *VerificationRepository) DeleteOTP(ctx context.Context, otpID int64) error {
	query := `DELETE FROM account_verifications WHERE id = $1`

	_, err := r.db.Exec(ctx, query, otpID)
	if err != nil {
		return fmt.Errorf("failed to delete OTP: %w", err)
	}

	return nil
}

// ConsumeOTPAndActivate deletes the verification record and flips the user
// to enabled in a single transaction, so a failed commit leaves both rows
// untouched.
func (r *VerificationRepository) ConsumeOTPAndActivate(ctx context.Context, otpID int64, userID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM account_verifications WHERE id = $1`, otpID); err != nil {
		return fmt.Errorf("failed to consume OTP: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET enabled = true, updated_at = now() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit activation: %w", err)
	}

	return nil
}

// ==============================================
// CLEANUP
// ==============================================

// DeleteExpiredOTPs removes verification records whose expiry passed more
// than olderThan ago. Expired codes are also deleted inline during verify;
// this sweeps the ones nobody ever retried.
func (r *VerificationRepository) DeleteExpiredOTPs(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		DELETE FROM account_verifications
		WHERE expires_at < $1
	`

	cutoff := time.Now().Add(-olderThan)
	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired OTPs: %w", err)
	}

	return tag.RowsAffected(), nil
}
