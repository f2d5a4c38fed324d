package repository

import (
	"context"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepository interface {
	FindByName(ctx context.Context, name string) (*models.Hashtag, error)
	GetOrCreate(ctx context.Context, name, slug string) (*models.Hashtag, bool, error)
	List(ctx context.Context, search, ordering string) ([]models.Hashtag, error)
	CountLinks(ctx context.Context, hashtagID int64) (int64, error)
	SetUsageCount(ctx context.Context, hashtagID, count int64) error
	Count(ctx context.Context) (int64, error)
	Popular(ctx context.Context, limit int) ([]models.Hashtag, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

var hashtagOrdering = map[string]string{
	"name":        "name",
	"usage_count": "usage_count",
	"created_at":  "created_at",
}

func (r *hashtagRepository) FindByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var h models.Hashtag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

// GetOrCreate inserts the hashtag unless a row already holds the name or slug, then
// re-fetches by name. A conflict on slug alone returns gorm.ErrRecordNotFound.
// Safe inside a transaction: a duplicate does not abort it.
func (r *hashtagRepository) GetOrCreate(ctx context.Context, name, slug string) (*models.Hashtag, bool, error) {
	h := models.Hashtag{Name: name, Slug: slug}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&h)
	if res.Error != nil {
		return nil, false, wrapWrite("create hashtag", res.Error)
	}
	if res.RowsAffected == 1 {
		return &h, true, nil
	}
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *hashtagRepository) List(ctx context.Context, search, ordering string) ([]models.Hashtag, error) {
	var list []models.Hashtag
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where("name ILIKE ?", likePattern(search))
	}
	err := q.Order(orderClause(ordering, hashtagOrdering, "usage_count DESC")).Order("name ASC").Find(&list).Error
	return list, err
}

// CountLinks counts the announcements currently linked to the hashtag.
func (r *hashtagRepository) CountLinks(ctx context.Context, hashtagID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.AnnouncementHashtag{}).Where("hashtag_id = ?", hashtagID).Count(&n).Error
	return n, err
}

func (r *hashtagRepository) SetUsageCount(ctx context.Context, hashtagID, count int64) error {
	return r.db.WithContext(ctx).Model(&models.Hashtag{}).Where("id = ?", hashtagID).UpdateColumn("usage_count", count).Error
}

func (r *hashtagRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Hashtag{}).Count(&n).Error
	return n, err
}

func (r *hashtagRepository) Popular(ctx context.Context, limit int) ([]models.Hashtag, error) {
	var list []models.Hashtag
	err := r.db.WithContext(ctx).
		Where("usage_count > ?", 0).
		Order("usage_count DESC").
		Order("name ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
