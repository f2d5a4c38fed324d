package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"unionhub/internal/microservices/http-api/authz"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/middleware"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asSubject stands in for the auth middleware.
func asSubject(s authz.Subject) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.Authenticated() {
			c.Set(middleware.ContextUserID, s.UserID)
			c.Set(middleware.ContextRole, s.Role)
		}
		c.Next()
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// MockAnnouncementService mocks the AnnouncementService interface
type MockAnnouncementService struct {
	mock.Mock
}

func (m *MockAnnouncementService) List(ctx context.Context, f repository.AnnouncementFilter) (*dto.Paginated[dto.AnnouncementResponse], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.AnnouncementResponse]), args.Error(1)
}

func (m *MockAnnouncementService) Get(ctx context.Context, actor authz.Subject, id int64) (*dto.AnnouncementDetailResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnnouncementDetailResponse), args.Error(1)
}

func (m *MockAnnouncementService) Create(ctx context.Context, actor authz.Subject, req dto.CreateAnnouncementRequest) (*dto.AnnouncementDetailResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnnouncementDetailResponse), args.Error(1)
}

func (m *MockAnnouncementService) Update(ctx context.Context, actor authz.Subject, id int64, req dto.UpdateAnnouncementRequest, partial bool) (*dto.AnnouncementDetailResponse, error) {
	args := m.Called(ctx, actor, id, req, partial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnnouncementDetailResponse), args.Error(1)
}

func (m *MockAnnouncementService) Delete(ctx context.Context, actor authz.Subject, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockAnnouncementService) TogglePin(ctx context.Context, actor authz.Subject, id int64) (*dto.PinResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PinResponse), args.Error(1)
}

func (m *MockAnnouncementService) Stats(ctx context.Context) (*dto.AnnouncementStatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnnouncementStatsResponse), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListByAnnouncement(ctx context.Context, announcementID int64, p repository.Pagination) (*dto.Paginated[dto.CommentResponse], error) {
	args := m.Called(ctx, announcementID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.CommentResponse]), args.Error(1)
}

func (m *MockCommentService) Create(ctx context.Context, actor authz.Subject, announcementID int64, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, actor, announcementID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Get(ctx context.Context, id int64) (*dto.CommentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, actor authz.Subject, id int64, content string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, actor, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, actor authz.Subject, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) Toggle(ctx context.Context, actor authz.Subject, announcementID int64) (*dto.LikeResponse, error) {
	args := m.Called(ctx, actor, announcementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeResponse), args.Error(1)
}

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RefreshResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*service.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *service.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Profile(ctx context.Context, actor authz.Subject) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, actor authz.Subject, req dto.ProfileUpdateRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockAccountService) ListActivities(ctx context.Context, actor authz.Subject, p repository.Pagination) (*dto.Paginated[dto.ActivityResponse], error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ActivityResponse]), args.Error(1)
}

func (m *MockAccountService) RecordActivity(ctx context.Context, actor authz.Subject, req dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ActivityResponse), args.Error(1)
}

func (m *MockAccountService) ListNotifications(ctx context.Context, actor authz.Subject, p repository.Pagination) (*dto.Paginated[dto.NotificationResponse], error) {
	args := m.Called(ctx, actor, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.NotificationResponse]), args.Error(1)
}

func (m *MockAccountService) MarkNotificationRead(ctx context.Context, actor authz.Subject, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockAccountService) MarkAllNotificationsRead(ctx context.Context, actor authz.Subject) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, f repository.CategoryFilter) ([]dto.CategoryResponse, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, actor authz.Subject, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, actor authz.Subject, id int64, req dto.CategoryRequest, partial bool) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, actor, id, req, partial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, actor authz.Subject, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockCategoryService) ListHashtags(ctx context.Context, search, ordering string) ([]dto.HashtagResponse, error) {
	args := m.Called(ctx, search, ordering)
	return args.Get(0).([]dto.HashtagResponse), args.Error(1)
}
