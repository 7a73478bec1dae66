package models

import (
	"time"
)

// ==============================================
// ACCOUNT VERIFICATION MODEL
// ==============================================

// AccountVerification is a one-time password issued to an account. An
// account may accumulate several rows (register + resends); only the most
// recently created one is ever checked.
type AccountVerification struct {
	ID        int64     `db:"id"`
	UserID    int       `db:"user_id"`
	Code      string    `db:"code"` // 6-digit OTP
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (v *AccountVerification) IsExpired() bool {
	return time.Now().After(v.ExpiresAt)
}

// ==============================================
// OTP CONFIGURATION
// ==============================================
const (
	OTPLength = 6 // 6-digit OTP

	// DefaultOTPTTL is the fallback expiry applied by the schema when no
	// explicit TTL is supplied.
	DefaultOTPTTL = 10 * time.Minute

	// RegistrationOTPTTL is used for signup and resend codes.
	RegistrationOTPTTL = 30 * time.Minute

	// PasswordResetOTPTTL is used for forgot-password codes.
	PasswordResetOTPTTL = time.Hour
)
