package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/handler"
	"ocrdesk/internal/service"
	"ocrdesk/mocks"
)

func jsonRequest(method, path string, body interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authResult() *service.AuthResult {
	return &service.AuthResult{
		User: &domain.User{ID: uuid.New(), Username: "reader", Email: "reader@test.com"},
		Tokens: &service.TokenPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(time.Hour),
		},
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)
	input := service.RegisterInput{Username: "reader", Email: "reader@test.com", Password: "password123"}
	authSvc.On("Register", mock.Anything, input).Return(authResult(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/register", input)

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "nope"})

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	authSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)
	authSvc.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateUsername)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/register",
		service.RegisterInput{Username: "reader", Email: "reader@test.com", Password: "password123"})

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_USERNAME", decode(t, w).Error.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/login",
		service.LoginInput{Email: "reader@test.com", Password: "wrong"})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w).Error.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)
	authSvc.On("Login", mock.Anything, service.LoginInput{Email: "reader@test.com", Password: "password123"}).
		Return(authResult(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/login",
		service.LoginInput{Email: "reader@test.com", Password: "password123"})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"access"`)
}

func TestAuthHandler_RefreshToken_Unauthorized(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc)
	authSvc.On("RefreshToken", mock.Anything, "stale").Return(nil, domain.ErrUnauthorized)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/auth/refresh", service.RefreshInput{RefreshToken: "stale"})

	h.RefreshToken(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
