package repository

import (
	"context"
	"fmt"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollegeRepository interface {
	Create(ctx context.Context, college *models.College) error
	FindByID(ctx context.Context, id int64) (*models.College, error)
	List(ctx context.Context, search, ordering string) ([]models.College, error)
	Update(ctx context.Context, college *models.College) error
	ReplaceDepartments(ctx context.Context, collegeID int64, departments []models.Department) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	DepartmentCounts(ctx context.Context) (map[string]int64, error)
}

type collegeRepository struct {
	db *gorm.DB
}

func NewCollegeRepository(db *gorm.DB) CollegeRepository {
	return &collegeRepository{db: db}
}

var collegeOrdering = map[string]string{"name": "colleges.name"}

func orderedDepartments(db *gorm.DB) *gorm.DB {
	return db.Order("departments.name ASC")
}

// Create inserts the college together with any nested departments.
func (r *collegeRepository) Create(ctx context.Context, college *models.College) error {
	if err := r.db.WithContext(ctx).Create(college).Error; err != nil {
		return fmt.Errorf("create college: %w", err)
	}
	return nil
}

func (r *collegeRepository) FindByID(ctx context.Context, id int64) (*models.College, error) {
	var c models.College
	if err := r.db.WithContext(ctx).Preload("Departments", orderedDepartments).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collegeRepository) List(ctx context.Context, search, ordering string) ([]models.College, error) {
	var list []models.College
	q := r.db.WithContext(ctx)
	if search != "" {
		p := likePattern(search)
		q = q.Where("(name ILIKE ? OR leader_name ILIKE ?)", p, p)
	}
	err := q.Preload("Departments", orderedDepartments).
		Order(orderClause(ordering, collegeOrdering, "colleges.name ASC")).
		Find(&list).Error
	return list, err
}

func (r *collegeRepository) Update(ctx context.Context, college *models.College) error {
	err := r.db.WithContext(ctx).
		Model(college).
		Omit(clause.Associations).
		Select("name", "leader_name", "leader_image").
		Updates(college).Error
	if err != nil {
		return fmt.Errorf("update college: %w", err)
	}
	return nil
}

func (r *collegeRepository) ReplaceDepartments(ctx context.Context, collegeID int64, departments []models.Department) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("college_id = ?", collegeID).Delete(&models.Department{}).Error; err != nil {
		return fmt.Errorf("clear departments: %w", err)
	}
	if len(departments) == 0 {
		return nil
	}
	for i := range departments {
		departments[i].ID = 0
		departments[i].CollegeID = collegeID
	}
	if err := db.Create(&departments).Error; err != nil {
		return fmt.Errorf("create departments: %w", err)
	}
	return nil
}

// Delete cascades to departments and detaches leaders.
func (r *collegeRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Leader{}).Where("college_id = ?", id).Update("college_id", nil).Error; err != nil {
		return fmt.Errorf("detach leaders: %w", err)
	}
	if err := db.Where("college_id = ?", id).Delete(&models.Department{}).Error; err != nil {
		return fmt.Errorf("delete departments: %w", err)
	}
	res := db.Delete(&models.College{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete college: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *collegeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.College{}).Count(&n).Error
	return n, err
}

// DepartmentCounts maps college name to its number of departments.
func (r *collegeRepository) DepartmentCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Name  string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.College{}).
		Select("colleges.name AS name, COUNT(departments.id) AS total").
		Joins("LEFT JOIN departments ON departments.college_id = colleges.id").
		Group("colleges.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Total
	}
	return out, nil
}
