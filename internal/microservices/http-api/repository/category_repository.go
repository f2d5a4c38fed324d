package repository

import (
	"context"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CategoryFilter struct {
	Search   string
	Ordering string
}

// CategoryCount is one row of the per-category published announcement count.
type CategoryCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindActiveByID(ctx context.Context, id int64) (*models.Category, error)
	ListActive(ctx context.Context, f CategoryFilter) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	CountActive(ctx context.Context) (int64, error)
	PublishedCounts(ctx context.Context) ([]CategoryCount, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

var categoryOrdering = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return wrapWrite("create category", r.db.WithContext(ctx).Create(category).Error)
}

func (r *categoryRepository) FindActiveByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) ListActive(ctx context.Context, f CategoryFilter) ([]models.Category, error) {
	var list []models.Category
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where("(name ILIKE ? OR description ILIKE ?)", p, p)
	}
	err := q.Order(orderClause(f.Ordering, categoryOrdering, "name ASC")).Find(&list).Error
	return list, err
}

// Update writes every editable column, including is_active=false for soft deletes.
func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).
		Model(category).
		Select("name", "slug", "description", "color", "is_active").
		Updates(category).Error
	return wrapWrite("update category", err)
}

func (r *categoryRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *categoryRepository) PublishedCounts(ctx context.Context) ([]CategoryCount, error) {
	var out []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.id, categories.name, categories.slug, categories.color, COUNT(announcements.id) AS count").
		Joins("LEFT JOIN announcements ON announcements.category_id = categories.id AND announcements.is_published = ?", true).
		Where("categories.is_active = ?", true).
		Group("categories.id").
		Order("categories.name ASC").
		Scan(&out).Error
	return out, err
}
