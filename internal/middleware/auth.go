package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pluglr/auth-service/internal/api/dto"
	"github.com/pluglr/auth-service/internal/auth"
	"github.com/pluglr/auth-service/internal/models"
)

// Context keys set by the auth middleware
const (
	contextUserKey   = "auth.user"
	contextUserIDKey = "auth.user_id"
)

// UserGetter loads the authenticated account after token validation
type UserGetter interface {
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
}

// RequireAuth validates the Authorization bearer token, loads the account
// behind it and stores both on the request context. Failures return
// 401 {detail, status}, the shape the client already parses.
func RequireAuth(tokens *auth.TokenService, users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authentication credentials were not provided.")
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}
		if !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid token format")
			return
		}

		userID, err := tokens.Validate(parts[1])
		if err != nil {
			if errors.Is(err, models.ErrTokenExpired) {
				abortUnauthorized(c, "Access token has expired.")
				return
			}
			abortUnauthorized(c, "Invalid access token.")
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "User not found")
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextUserIDKey, user.ID)
		c.Next()
	}
}

// UserID returns the authenticated user's id from the gin context
func UserID(c *gin.Context) (int, bool) {
	id, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := id.(int)
	return userID, ok
}

// CurrentUser returns the authenticated user from the gin context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.AuthErrorResponse{
		Detail: detail,
		Status: http.StatusUnauthorized,
	})
}
