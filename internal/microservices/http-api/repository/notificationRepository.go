package repository

import (
	"context"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, p Pagination) ([]models.Notification, int64, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) (bool, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return wrapWrite("create notification", r.db.WithContext(ctx).Create(notification).Error)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, p Pagination) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p = p.Normalize()
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&notifications).Error
	return notifications, total, err
}

// MarkAsRead reports false when the notification does not exist or belongs to someone else.
func (r *notificationRepository) MarkAsRead(ctx context.Context, userID string, notificationID int64) (bool, error) {
	// postgres counts matched rows, so an already-read notification still reports 1
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
