package repository

import (
	"context"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.UserActivity) error
	ListByUser(ctx context.Context, userID string, p Pagination) ([]models.UserActivity, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.UserActivity) error {
	return wrapWrite("create activity", r.db.WithContext(ctx).Create(activity).Error)
}

func (r *activityRepository) ListByUser(ctx context.Context, userID string, p Pagination) ([]models.UserActivity, int64, error) {
	var list []models.UserActivity
	var total int64

	q := r.db.WithContext(ctx).Model(&models.UserActivity{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p = p.Normalize()
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
