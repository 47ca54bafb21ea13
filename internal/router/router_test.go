package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
	"ocrdesk/internal/handler"
	"ocrdesk/internal/router"
	"ocrdesk/internal/service"
	"ocrdesk/mocks"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func (okPinger) Ping(context.Context) error { return nil }

func setup() (*gin.Engine, *mocks.MockAuthService, *mocks.MockOCRService) {
	gin.SetMode(gin.TestMode)
	authSvc := new(mocks.MockAuthService)
	ocrSvc := new(mocks.MockOCRService)
	r := router.Setup(
		authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewOCRHandler(ocrSvc),
		handler.NewHealthHandler(okPinger{}, okPinger{}),
		[]string{"http://localhost:3000"},
		10<<20,
		config.RateLimitConfig{RequestsPerMinute: 60, Burst: 2},
	)
	return r, authSvc, ocrSvc
}

func TestRouter_Health(t *testing.T) {
	r, _, _ := setup()

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_HistoryRequiresAuth(t *testing.T) {
	r, _, ocrSvc := setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/ocr/history", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	ocrSvc.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
}

func TestRouter_HistoryScopedToToken(t *testing.T) {
	r, authSvc, ocrSvc := setup()
	userID := uuid.New()
	authSvc.On("ValidateToken", "tok").Return(&service.Claims{UserID: userID}, nil)
	ocrSvc.On("History", mock.Anything, userID).Return([]domain.OcrRecord{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/ocr/history", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	ocrSvc.AssertExpectations(t)
}

func TestRouter_ExportNotShadowedByID(t *testing.T) {
	r, authSvc, ocrSvc := setup()
	userID := uuid.New()
	authSvc.On("ValidateToken", "tok").Return(&service.Claims{UserID: userID}, nil)
	ocrSvc.On("Export", mock.Anything, userID, mock.Anything).
		Return(&service.ExportFile{Name: "h.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("x")}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/ocr/history/export", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	ocrSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_AuthRateLimited(t *testing.T) {
	r, authSvc, _ := setup()
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"reader@test.com","password":"wrong-password"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}
