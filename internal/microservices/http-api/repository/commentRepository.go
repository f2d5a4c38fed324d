package repository

import (
	"context"
	"fmt"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByAnnouncement(ctx context.Context, announcementID int64, p Pagination) ([]models.Comment, int64, error)
	UpdateContent(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountByAnnouncements(ctx context.Context, announcementIDs []int64) (map[int64]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Announcement").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByAnnouncement returns comments oldest first
func (r *commentRepository) ListByAnnouncement(ctx context.Context, announcementID int64, p Pagination) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("announcement_id = ?", announcementID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p = p.Normalize()
	err := r.db.WithContext(ctx).
		Where("announcement_id = ?", announcementID).
		Preload("Author").
		Order("timestamp ASC, id ASC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Model(comment).Select("content", "updated_at").Updates(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&n).Error
	return n, err
}

// CountByAnnouncements returns comment totals keyed by announcement id. Missing keys mean zero.
func (r *commentRepository) CountByAnnouncements(ctx context.Context, announcementIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(announcementIDs))
	if len(announcementIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AnnouncementID int64
		Total          int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("announcement_id, COUNT(*) AS total").
		Where("announcement_id IN ?", announcementIDs).
		Group("announcement_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AnnouncementID] = row.Total
	}
	return out, nil
}
