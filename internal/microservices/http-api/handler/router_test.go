package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(opts RouterOptions) (*gin.Engine, *MockAuthService, *MockAnnouncementService) {
	gin.SetMode(gin.TestMode)
	authSvc := new(MockAuthService)
	announcements := new(MockAnnouncementService)
	r := NewRouter(Services{
		Auth:          authSvc,
		Account:       new(MockAccountService),
		Announcements: announcements,
		Comments:      new(MockCommentService),
		Likes:         new(MockLikeService),
		Categories:    new(MockCategoryService),
	}, opts)
	return r, authSvc, announcements
}

func withToken(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}

func TestRouter_Health(t *testing.T) {
	r, _, _ := newTestRouter(RouterOptions{HealthCheck: func(context.Context) error { return nil }})
	w := doJSON(r, http.MethodGet, "/api/health/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	r, _, _ = newTestRouter(RouterOptions{HealthCheck: func(context.Context) error { return errors.New("down") }})
	w = doJSON(r, http.MethodGet, "/api/health/", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_BearerTokenSetsSubject(t *testing.T) {
	r, authSvc, announcements := newTestRouter(RouterOptions{})
	authSvc.On("ValidateToken", mock.Anything, "good").
		Return(&service.Claims{UserID: "admin-1", Role: models.RoleAdmin}, nil)
	announcements.On("TogglePin", mock.Anything, authz.Subject{UserID: "admin-1", Role: models.RoleAdmin}, int64(2)).
		Return(&dto.PinResponse{Success: true, Action: "pinned", IsPinned: true}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withToken(http.MethodPost, "/api/announcements/2/pin/", "Bearer good"))

	assert.Equal(t, http.StatusOK, w.Code)
	announcements.AssertExpectations(t)
}

func TestRouter_TokenPrefixAccepted(t *testing.T) {
	r, authSvc, announcements := newTestRouter(RouterOptions{})
	authSvc.On("ValidateToken", mock.Anything, "good").Return(&service.Claims{UserID: "user-1", Role: models.RoleUser}, nil)
	announcements.On("Stats", mock.Anything).Return(&dto.AnnouncementStatsResponse{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withToken(http.MethodGet, "/api/announcements/stats/", "Token good"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_InvalidTokenRejectedEvenOnPublicRoutes(t *testing.T) {
	r, authSvc, announcements := newTestRouter(RouterOptions{})
	authSvc.On("ValidateToken", mock.Anything, "bad").Return(nil, service.ErrInvalidToken)

	for _, header := range []string{"Bearer bad", "Basic abc", "Bearer"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, withToken(http.MethodGet, "/api/announcements/stats/", header))
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
	announcements.AssertNotCalled(t, "Stats", mock.Anything)
}

func TestRouter_AuthRateLimit(t *testing.T) {
	r, authSvc, _ := newTestRouter(RouterOptions{AuthRateLimit: 0.001, AuthRateBurst: 1})
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

	first := doJSON(r, http.MethodPost, "/api/auth/login/", `{"email":"a@b.co","password":"x"}`)
	second := doJSON(r, http.MethodPost, "/api/auth/login/", `{"email":"a@b.co","password":"x"}`)

	assert.Equal(t, http.StatusBadRequest, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

func loginFrom(r *gin.Engine, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_AuthRateLimitIgnoresForwardedFor(t *testing.T) {
	r, authSvc, _ := newTestRouter(RouterOptions{AuthRateLimit: 0.001, AuthRateBurst: 2})
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

	codes := make([]int, 0, 3)
	for i := 1; i <= 3; i++ {
		codes = append(codes, loginFrom(r, fmt.Sprintf("203.0.113.%d", i)).Code)
	}

	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestRouter_AuthRateLimitTrustedProxy(t *testing.T) {
	// httptest requests come from 192.0.2.1
	r, authSvc, _ := newTestRouter(RouterOptions{AuthRateLimit: 0.001, AuthRateBurst: 1, TrustedProxies: []string{"192.0.2.0/24"}})
	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

	assert.Equal(t, http.StatusBadRequest, loginFrom(r, "203.0.113.1").Code)
	assert.Equal(t, http.StatusBadRequest, loginFrom(r, "203.0.113.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(r, "203.0.113.1").Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _, _ := newTestRouter(RouterOptions{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/announcements/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(RouterOptions{MetricsEnabled: true})
	doJSON(r, http.MethodGet, "/api/health/", "")

	w := doJSON(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unionhub_http_requests_total")
}
