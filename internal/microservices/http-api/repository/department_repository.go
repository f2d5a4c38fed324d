package repository

import (
	"context"
	"fmt"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type DepartmentFilter struct {
	CollegeID *int64
	Search    string
	Ordering  string
}

type DepartmentRepository interface {
	Create(ctx context.Context, d *models.Department) error
	FindByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context, f DepartmentFilter) ([]models.Department, error)
	Update(ctx context.Context, d *models.Department) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

var departmentOrdering = map[string]string{"name": "name"}

func (r *departmentRepository) Create(ctx context.Context, d *models.Department) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	var d models.Department
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepository) List(ctx context.Context, f DepartmentFilter) ([]models.Department, error) {
	var list []models.Department
	q := r.db.WithContext(ctx)
	if f.CollegeID != nil {
		q = q.Where("college_id = ?", *f.CollegeID)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where("(name ILIKE ? OR leader_name ILIKE ?)", p, p)
	}
	err := q.Order(orderClause(f.Ordering, departmentOrdering, "name ASC")).Find(&list).Error
	return list, err
}

func (r *departmentRepository) Update(ctx context.Context, d *models.Department) error {
	err := r.db.WithContext(ctx).
		Model(d).
		Select("college_id", "name", "leader_name", "email", "phone").
		Updates(d).Error
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Department{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Count(&n).Error
	return n, err
}
