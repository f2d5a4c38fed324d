package service

import (
	"context"
	"time"

	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// passThroughTx runs fn against the same mocked repositories.
type passThroughTx struct {
	repos repository.Repositories
}

func (p passThroughTx) WithinTransaction(ctx context.Context, fn func(tx repository.Repositories) error) error {
	return fn(p.repos)
}

type mockRepos struct {
	users         *MockUserRepository
	refreshTokens *MockRefreshTokenRepository
	activities    *MockActivityRepository
	notifications *MockNotificationRepository
	categories    *MockCategoryRepository
	hashtags      *MockHashtagRepository
	announcements *MockAnnouncementRepository
	likes         *MockLikeRepository
	comments      *MockCommentRepository
	colleges      *MockCollegeRepository
	departments   *MockDepartmentRepository
	leaders       *MockLeaderRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:         new(MockUserRepository),
		refreshTokens: new(MockRefreshTokenRepository),
		activities:    new(MockActivityRepository),
		notifications: new(MockNotificationRepository),
		categories:    new(MockCategoryRepository),
		hashtags:      new(MockHashtagRepository),
		announcements: new(MockAnnouncementRepository),
		likes:         new(MockLikeRepository),
		comments:      new(MockCommentRepository),
		colleges:      new(MockCollegeRepository),
		departments:   new(MockDepartmentRepository),
		leaders:       new(MockLeaderRepository),
	}
}

func (m *mockRepos) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:         m.users,
		RefreshTokens: m.refreshTokens,
		Activities:    m.activities,
		Notifications: m.notifications,
		Categories:    m.categories,
		Hashtags:      m.hashtags,
		Announcements: m.announcements,
		Likes:         m.likes,
		Comments:      m.comments,
		Colleges:      m.colleges,
		Departments:   m.departments,
		Leaders:       m.leaders,
	}
}

func (m *mockRepos) Tx() repository.Transactor {
	return passThroughTx{repos: m.Repositories()}
}

// MockStatsCache records invalidations.
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) GetStats(ctx context.Context, dst any) (bool, error) {
	args := m.Called(ctx, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatsCache) SetStats(ctx context.Context, v any) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockStatsCache) InvalidateStats(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockTokenDenylist struct {
	mock.Mock
}

func (m *MockTokenDenylist) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	return m.Called(ctx, jti, ttl).Error(0)
}

func (m *MockTokenDenylist) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *models.UserActivity) error {
	return m.Called(ctx, activity).Error(0)
}

func (m *MockActivityRepository) ListByUser(ctx context.Context, userID string, p repository.Pagination) ([]models.UserActivity, int64, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).([]models.UserActivity), args.Get(1).(int64), args.Error(2)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, p repository.Pagination) ([]models.Notification, int64, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, userID string, id int64) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) FindActiveByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListActive(ctx context.Context, f repository.CategoryFilter) ([]models.Category, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) PublishedCounts(ctx context.Context) ([]repository.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.CategoryCount), args.Error(1)
}

type MockHashtagRepository struct {
	mock.Mock
}

func (m *MockHashtagRepository) FindByName(ctx context.Context, name string) (*models.Hashtag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) GetOrCreate(ctx context.Context, name, slug string) (*models.Hashtag, bool, error) {
	args := m.Called(ctx, name, slug)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Hashtag), args.Bool(1), args.Error(2)
}

func (m *MockHashtagRepository) List(ctx context.Context, search, ordering string) ([]models.Hashtag, error) {
	args := m.Called(ctx, search, ordering)
	return args.Get(0).([]models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) CountLinks(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHashtagRepository) SetUsageCount(ctx context.Context, id, count int64) error {
	return m.Called(ctx, id, count).Error(0)
}

func (m *MockHashtagRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHashtagRepository) Popular(ctx context.Context, limit int) ([]models.Hashtag, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Hashtag), args.Error(1)
}

type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAnnouncementRepository) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) FindDetail(ctx context.Context, id int64) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementRepository) List(ctx context.Context, f repository.AnnouncementFilter) ([]models.Announcement, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Announcement), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAnnouncementRepository) SetPinned(ctx context.Context, id int64, pinned bool) error {
	return m.Called(ctx, id, pinned).Error(0)
}

func (m *MockAnnouncementRepository) SetLikes(ctx context.Context, id, likes int64) error {
	return m.Called(ctx, id, likes).Error(0)
}

func (m *MockAnnouncementRepository) HashtagIDs(ctx context.Context, id int64) ([]int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAnnouncementRepository) ReplaceHashtags(ctx context.Context, id int64, hashtagIDs []int64) error {
	return m.Called(ctx, id, hashtagIDs).Error(0)
}

func (m *MockAnnouncementRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAnnouncementRepository) CountPublished(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Find(ctx context.Context, announcementID int64, userID string) (*models.AnnouncementLike, error) {
	args := m.Called(ctx, announcementID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnnouncementLike), args.Error(1)
}

func (m *MockLikeRepository) Insert(ctx context.Context, like *models.AnnouncementLike) (bool, error) {
	args := m.Called(ctx, like)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLikeRepository) CountByAnnouncement(ctx context.Context, announcementID int64) (int64, error) {
	args := m.Called(ctx, announcementID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByAnnouncement(ctx context.Context, announcementID int64, p repository.Pagination) ([]models.Comment, int64, error) {
	args := m.Called(ctx, announcementID, p)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCommentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountByAnnouncements(ctx context.Context, ids []int64) (map[int64]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

type MockCollegeRepository struct {
	mock.Mock
}

func (m *MockCollegeRepository) Create(ctx context.Context, c *models.College) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCollegeRepository) FindByID(ctx context.Context, id int64) (*models.College, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.College), args.Error(1)
}

func (m *MockCollegeRepository) List(ctx context.Context, search, ordering string) ([]models.College, error) {
	args := m.Called(ctx, search, ordering)
	return args.Get(0).([]models.College), args.Error(1)
}

func (m *MockCollegeRepository) Update(ctx context.Context, c *models.College) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCollegeRepository) ReplaceDepartments(ctx context.Context, collegeID int64, departments []models.Department) error {
	return m.Called(ctx, collegeID, departments).Error(0)
}

func (m *MockCollegeRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCollegeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollegeRepository) DepartmentCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Create(ctx context.Context, d *models.Department) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockDepartmentRepository) List(ctx context.Context, f repository.DepartmentFilter) ([]models.Department, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, d *models.Department) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDepartmentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLeaderRepository struct {
	mock.Mock
}

func (m *MockLeaderRepository) Create(ctx context.Context, l *models.Leader) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLeaderRepository) FindByID(ctx context.Context, id int64) (*models.Leader, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leader), args.Error(1)
}

func (m *MockLeaderRepository) List(ctx context.Context, f repository.LeaderFilter) ([]models.Leader, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Leader), args.Error(1)
}

func (m *MockLeaderRepository) Update(ctx context.Context, l *models.Leader) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLeaderRepository) ReplaceAchievements(ctx context.Context, leaderID int64, achievements []string) error {
	return m.Called(ctx, leaderID, achievements).Error(0)
}

func (m *MockLeaderRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeaderRepository) Stats(ctx context.Context) (*repository.LeaderStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.LeaderStats), args.Error(1)
}

type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) PublishNotification(userID string, n dto.NotificationResponse) {
	m.Called(userID, n)
}
