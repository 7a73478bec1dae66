package dto

import "github.com/pluglr/auth-service/internal/models"

// ==============================================
// USER REQUEST DTOs
// ==============================================

// CompleteProfileRequest - partial profile update; omitted fields are left
// untouched. Mobile must be digits only.
type CompleteProfileRequest struct {
	FirstName *string `json:"firstname" binding:"omitempty,max=100"`
	LastName  *string `json:"lastname" binding:"omitempty,max=100"`
	Mobile    *string `json:"mobile" binding:"omitempty,numeric,max=15"`
	State     *string `json:"state" binding:"omitempty,max=100"`
}

// ==============================================
// USER RESPONSE DTOs
// ==============================================

// UserDetailResponse wraps a user lookup, mirroring the client contract
type UserDetailResponse struct {
	Data *models.PublicUser `json:"data"`
}
