package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/pluglr/auth-service/internal/api/dto"
	"github.com/pluglr/auth-service/internal/models"
	"github.com/pluglr/auth-service/internal/repository"
)

// ==============================================
// USER SERVICE
// ==============================================

// UserService covers profile completion and lookups for authenticated users.
type UserService struct {
	userRepo UserRepositoryInterface
}

func NewUserService(userRepo UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUserByID fetches a user for the detail endpoint
func (s *UserService) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, models.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// CompleteProfile applies a partial profile update. Omitted fields keep
// their current value; mobile must be digits only.
func (s *UserService) CompleteProfile(ctx context.Context, userID int, req dto.CompleteProfileRequest) error {
	if req.Mobile != nil && !digitsOnly(*req.Mobile) {
		return fmt.Errorf("%w: mobile number must contain only digits", models.ErrInvalidInput)
	}

	upd := models.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
		State:     req.State,
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, upd); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.ErrAccountNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
