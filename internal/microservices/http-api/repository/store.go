package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles every repository bound to the same *gorm.DB, which is either
// the pool or an open transaction.
type Repositories struct {
	Users         UserRepository
	RefreshTokens RefreshTokenRepository
	Activities    ActivityRepository
	Notifications NotificationRepository
	Categories    CategoryRepository
	Hashtags      HashtagRepository
	Announcements AnnouncementRepository
	Likes         LikeRepository
	Comments      CommentRepository
	Colleges      CollegeRepository
	Departments   DepartmentRepository
	Leaders       LeaderRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         NewUserRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Activities:    NewActivityRepository(db),
		Notifications: NewNotificationRepository(db),
		Categories:    NewCategoryRepository(db),
		Hashtags:      NewHashtagRepository(db),
		Announcements: NewAnnouncementRepository(db),
		Likes:         NewLikeRepository(db),
		Comments:      NewCommentRepository(db),
		Colleges:      NewCollegeRepository(db),
		Departments:   NewDepartmentRepository(db),
		Leaders:       NewLeaderRepository(db),
	}
}

// Transactor runs fn with repositories bound to a single transaction. Returning an
// error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx Repositories) error) error
}

type Store struct {
	Repositories
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{Repositories: NewRepositories(db), db: db}
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(tx Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
