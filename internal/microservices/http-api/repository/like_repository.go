package repository

import (
	"context"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	Find(ctx context.Context, announcementID int64, userID string) (*models.AnnouncementLike, error)
	Insert(ctx context.Context, like *models.AnnouncementLike) (bool, error)
	Delete(ctx context.Context, likeID int64) error
	CountByAnnouncement(ctx context.Context, announcementID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, announcementID int64, userID string) (*models.AnnouncementLike, error) {
	var like models.AnnouncementLike
	err := r.db.WithContext(ctx).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Insert reports false when the (announcement, user) pair already exists.
func (r *likeRepository) Insert(ctx context.Context, like *models.AnnouncementLike) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit("Announcement", "User").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return false, wrapWrite("create like", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *likeRepository) Delete(ctx context.Context, likeID int64) error {
	return r.db.WithContext(ctx).Delete(&models.AnnouncementLike{}, likeID).Error
}

func (r *likeRepository) CountByAnnouncement(ctx context.Context, announcementID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AnnouncementLike{}).Where("announcement_id = ?", announcementID).Count(&n).Error
	return n, err
}

func (r *likeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AnnouncementLike{}).Count(&n).Error
	return n, err
}
