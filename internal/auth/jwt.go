package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pluglr/auth-service/internal/models"
)

// Token lifetimes
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// RoleUser is the only role this service issues.
const RoleUser = "USER"

// Claims represents the JWT claim set
type Claims struct {
	Roles  []string `json:"roles"`
	UserID int      `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService creates and validates signed access/refresh tokens. The
// signing secret is injected at construction, never read from a global.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// IssueAccessToken creates a 1-day HS256 access token for a user
func (t *TokenService) IssueAccessToken(userID int) (string, error) {
	return t.issue(userID, AccessTokenTTL)
}

// IssueRefreshToken creates a 7-day HS256 refresh token for a user
func (t *TokenService) IssueRefreshToken(userID int) (string, error) {
	return t.issue(userID, RefreshTokenTTL)
}

func (t *TokenService) issue(userID int, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		Roles:  []string{RoleUser},
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate verifies signature and expiry and returns the user ID.
// Returns models.ErrTokenExpired for expired tokens and
// models.ErrTokenInvalid for anything else that fails verification.
func (t *TokenService) Validate(tokenString string) (int, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, models.ErrTokenExpired
		}
		return 0, models.ErrTokenInvalid
	}

	if !token.Valid {
		return 0, models.ErrTokenInvalid
	}

	return claims.UserID, nil
}
