package models

import (
	"database/sql"
	"time"
)

// ==============================================
// USER MODEL (Database mapping)
// ==============================================

// User represents a registered account. Email is the primary login
// identifier; profile fields are optional and filled in after signup.
type User struct {
	ID           int            `db:"id"`
	Email        string         `db:"email"` // stored lowercased
	PasswordHash string         `db:"password_hash"`
	FirstName    sql.NullString `db:"firstname"`
	LastName     sql.NullString `db:"lastname"`
	Mobile       sql.NullString `db:"mobile"`
	State        sql.NullString `db:"state"`
	Enabled      bool           `db:"enabled"` // false until OTP verification
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// PublicUser is the safe version to return to clients (no password hash).
// Nullable profile fields are rendered as empty strings, which is what the
// consuming client expects.
type PublicUser struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Mobile    string    `json:"mobile"`
	State     string    `json:"state"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPublic converts User to PublicUser (removes sensitive fields)
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName.String,
		LastName:  u.LastName.String,
		Mobile:    u.Mobile.String,
		State:     u.State.String,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}

// HasProfile checks if the user has completed at least part of their profile
func (u *User) HasProfile() bool {
	return u.FirstName.Valid || u.LastName.Valid || u.Mobile.Valid || u.State.Valid
}

// ProfileUpdate carries a partial profile edit. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Mobile    *string
	State     *string
}
