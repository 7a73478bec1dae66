package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pluglr/auth-service/internal/api/dto"
	"github.com/pluglr/auth-service/internal/models"
)

// ==============================================
// MOCK SERVICE
// ==============================================

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) VerifyAndActivate(ctx context.Context, email, code string) (*models.User, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ResendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshToken(userID int) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthService) SendWelcomeEmail(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

// ==============================================
// TEST SETUP
// ==============================================

func setupAuthTest() (*gin.Engine, *MockAuthService) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService)
	handler.RegisterRoutes(router)

	return router, mockService
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ==============================================
// REGISTER TESTS
// ==============================================

func TestRegister_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	registerReq := dto.RegisterRequest{Email: "a@x.com", Password: "pw123456"}
	mockService.On("Register", mock.Anything, registerReq).
		Return(&models.User{ID: 1, Email: "a@x.com"}, nil)

	w := postJSON(router, "/api/v1/auth/register", registerReq)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "OTP sent to your email.")
	mockService.AssertExpectations(t)
}

func TestRegister_InvalidJSON(t *testing.T) {
	router, _ := setupAuthTest()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON data")
}

func TestRegister_EmailTaken(t *testing.T) {
	router, mockService := setupAuthTest()

	registerReq := dto.RegisterRequest{Email: "a@x.com", Password: "pw123456"}
	mockService.On("Register", mock.Anything, registerReq).
		Return(nil, models.ErrEmailTaken)

	w := postJSON(router, "/api/v1/auth/register", registerReq)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User already taken this email address.*")
	mockService.AssertExpectations(t)
}

func TestRegister_BlankInput(t *testing.T) {
	router, mockService := setupAuthTest()

	registerReq := dto.RegisterRequest{Email: "a@x.com", Password: ""}
	mockService.On("Register", mock.Anything, registerReq).
		Return(nil, models.ErrInvalidInput)

	w := postJSON(router, "/api/v1/auth/register", registerReq)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertExpectations(t)
}

// ==============================================
// LOGIN TESTS
// ==============================================

func TestLogin_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	loginReq := dto.LoginRequest{Email: "a@x.com", Password: "pw123456"}
	user := &models.User{ID: 7, Email: "a@x.com", Enabled: true}
	mockService.On("Login", mock.Anything, loginReq).
		Return(user, "access-token", "refresh-token", nil)

	w := postJSON(router, "/api/v1/auth/login", loginReq)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, 7, resp.User.ID)
	assert.Equal(t, "a@x.com", resp.User.Email)

	// Refresh token travels only in the httpOnly cookie
	assert.NotContains(t, w.Body.String(), "refresh-token")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.Equal(t, "refresh-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	mockService.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, mockService := setupAuthTest()

	loginReq := dto.LoginRequest{Email: "a@x.com", Password: "wrong"}
	mockService.On("Login", mock.Anything, loginReq).
		Return(nil, "", "", models.ErrInvalidCredentials)

	w := postJSON(router, "/api/v1/auth/login", loginReq)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password.")
	assert.Empty(t, w.Result().Cookies())
	mockService.AssertExpectations(t)
}

func TestLogin_Unverified(t *testing.T) {
	router, mockService := setupAuthTest()

	loginReq := dto.LoginRequest{Email: "a@x.com", Password: "pw123456"}
	mockService.On("Login", mock.Anything, loginReq).
		Return(nil, "", "", models.ErrAccountUnverified)

	w := postJSON(router, "/api/v1/auth/login", loginReq)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Your account is unverified.")
	mockService.AssertExpectations(t)
}

// ==============================================
// VERIFY OTP TESTS
// ==============================================

func TestVerifyOTP_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("VerifyAndActivate", mock.Anything, "a@x.com", "123456").
		Return(&models.User{ID: 1, Email: "a@x.com", Enabled: true}, nil)

	w := postJSON(router, "/api/v1/auth/verify-otp", dto.VerifyOTPRequest{
		Email: "a@x.com",
		OTP:   "123456",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "account enabled")
	mockService.AssertExpectations(t)
}

func TestVerifyOTP_BadCode(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("VerifyAndActivate", mock.Anything, "a@x.com", "000000").
		Return(nil, models.ErrOTPInvalid)

	w := postJSON(router, "/api/v1/auth/verify-otp", dto.VerifyOTPRequest{
		Email: "a@x.com",
		OTP:   "000000",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid OTP")
	mockService.AssertExpectations(t)
}

func TestVerifyOTP_Expired(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("VerifyAndActivate", mock.Anything, "a@x.com", "123456").
		Return(nil, models.ErrOTPExpired)

	w := postJSON(router, "/api/v1/auth/verify-otp", dto.VerifyOTPRequest{
		Email: "a@x.com",
		OTP:   "123456",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OTP has expired")
	mockService.AssertExpectations(t)
}

func TestVerifyOTP_ShortCodeRejectedByBinding(t *testing.T) {
	router, _ := setupAuthTest()

	// len=6 binding rejects before the service is called
	w := postJSON(router, "/api/v1/auth/verify-otp", dto.VerifyOTPRequest{
		Email: "a@x.com",
		OTP:   "123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email and OTP are required")
}

func TestVerifyOTP_UnknownUser(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("VerifyAndActivate", mock.Anything, "nobody@x.com", "123456").
		Return(nil, models.ErrAccountNotFound)

	w := postJSON(router, "/api/v1/auth/verify-otp", dto.VerifyOTPRequest{
		Email: "nobody@x.com",
		OTP:   "123456",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
	mockService.AssertExpectations(t)
}

// ==============================================
// RESEND OTP / FORGOT PASSWORD TESTS
// ==============================================

func TestResendOTP_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("ResendOTP", mock.Anything, "a@x.com").Return(nil)

	w := postJSON(router, "/api/v1/auth/resend-otp", dto.ResendOTPRequest{Email: "a@x.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "A new OTP has been sent to your email.")
	mockService.AssertExpectations(t)
}

func TestForgotPassword_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("ForgotPassword", mock.Anything, "a@x.com").Return(nil)

	w := postJSON(router, "/api/v1/auth/reset-password", dto.ForgotPasswordRequest{Email: "a@x.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Message has been sent to the email you provided.")
	mockService.AssertExpectations(t)
}

func TestForgotPassword_UnknownUser(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("ForgotPassword", mock.Anything, "nobody@x.com").
		Return(models.ErrAccountNotFound)

	w := postJSON(router, "/api/v1/auth/reset-password", dto.ForgotPasswordRequest{Email: "nobody@x.com"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

// ==============================================
// TOKEN REFRESH TESTS
// ==============================================

func TestRefreshToken_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("RefreshToken", 7).Return("new-refresh-token", nil)

	w := postJSON(router, "/api/v1/auth/token/refresh", dto.RefreshTokenRequest{UserID: 7})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.RefreshTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-refresh-token", resp.RefreshToken)
	mockService.AssertExpectations(t)
}

func TestRefreshToken_MissingUserID(t *testing.T) {
	router, _ := setupAuthTest()

	w := postJSON(router, "/api/v1/auth/token/refresh", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User ID is required.")
}

// ==============================================
// RESET PASSWORD TESTS
// ==============================================

func TestResetPassword_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	resetReq := dto.ResetPasswordRequest{
		Email:           "a@x.com",
		Password:        "new-pw-999",
		ConfirmPassword: "new-pw-999",
	}
	mockService.On("ResetPassword", mock.Anything, resetReq).Return(nil)

	w := postJSON(router, "/api/v1/auth/create-new-password", resetReq)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password updated successfully.")
	mockService.AssertExpectations(t)
}

func TestResetPassword_Mismatch(t *testing.T) {
	router, mockService := setupAuthTest()

	resetReq := dto.ResetPasswordRequest{
		Email:           "a@x.com",
		Password:        "new-pw-999",
		ConfirmPassword: "different",
	}
	mockService.On("ResetPassword", mock.Anything, resetReq).
		Return(models.ErrPasswordMismatch)

	w := postJSON(router, "/api/v1/auth/create-new-password", resetReq)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match.")
	mockService.AssertExpectations(t)
}

// ==============================================
// WELCOME EMAIL TESTS
// ==============================================

func TestSendWelcomeEmail_Success(t *testing.T) {
	router, mockService := setupAuthTest()

	mockService.On("SendWelcomeEmail", "a@x.com").Return(nil)

	w := postJSON(router, "/api/v1/send-welcome-email", dto.WelcomeEmailRequest{Email: "a@x.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome email sent successfully!")
	mockService.AssertExpectations(t)
}
