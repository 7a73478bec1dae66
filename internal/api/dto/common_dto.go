package dto

// ==============================================
// COMMON RESPONSE DTOs
// ==============================================

// ErrorResponse - standard error format. The HTTP status is duplicated in
// the body for client convenience.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Status int    `json:"status"`
}

// AuthErrorResponse - the shape the auth middleware returns on 401
type AuthErrorResponse struct {
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

// MessageResponse - generic success response
type MessageResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
