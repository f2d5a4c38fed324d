package repository

import (
	"context"
	"fmt"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderFilter struct {
	Department string
	Position   string
	CollegeID  *int64
	IsCabinet  *bool
	Search     string
	Ordering   string
}

// LeaderStats aggregates the leader directory.
type LeaderStats struct {
	Total            int64
	TotalTeamSize    int64
	DepartmentCounts map[string]int64
	Departments      []string
}

type LeaderRepository interface {
	Create(ctx context.Context, l *models.Leader) error
	FindByID(ctx context.Context, id int64) (*models.Leader, error)
	List(ctx context.Context, f LeaderFilter) ([]models.Leader, error)
	Update(ctx context.Context, l *models.Leader) error
	ReplaceAchievements(ctx context.Context, leaderID int64, achievements []string) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*LeaderStats, error)
}

type leaderRepository struct {
	db *gorm.DB
}

func NewLeaderRepository(db *gorm.DB) LeaderRepository {
	return &leaderRepository{db: db}
}

var leaderOrdering = map[string]string{
	"name":      "leaders.name",
	"join_date": "leaders.join_date",
	"team_size": "leaders.team_size",
}

func (r *leaderRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("College").
		Preload("College.Departments", orderedDepartments).
		Preload("Achievements", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") })
}

// Create inserts the leader with nested achievements as given.
func (r *leaderRepository) Create(ctx context.Context, l *models.Leader) error {
	if err := r.db.WithContext(ctx).Omit("College").Create(l).Error; err != nil {
		return fmt.Errorf("create leader: %w", err)
	}
	return nil
}

func (r *leaderRepository) FindByID(ctx context.Context, id int64) (*models.Leader, error) {
	var l models.Leader
	if err := r.withAssociations(r.db.WithContext(ctx)).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaderRepository) List(ctx context.Context, f LeaderFilter) ([]models.Leader, error) {
	var list []models.Leader
	q := r.db.WithContext(ctx).Model(&models.Leader{})
	if f.Department != "" {
		q = q.Where("leaders.department = ?", f.Department)
	}
	if f.Position != "" {
		q = q.Where("leaders.position = ?", f.Position)
	}
	if f.CollegeID != nil {
		q = q.Where("leaders.college_id = ?", *f.CollegeID)
	}
	if f.IsCabinet != nil {
		q = q.Where("leaders.is_cabinet = ?", *f.IsCabinet)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where("(leaders.name ILIKE ? OR leaders.position ILIKE ? OR leaders.department ILIKE ? OR leaders.description ILIKE ?)", p, p, p, p)
	}
	err := r.withAssociations(q).
		Order(orderClause(f.Ordering, leaderOrdering, "leaders.name ASC")).
		Find(&list).Error
	return list, err
}

func (r *leaderRepository) Update(ctx context.Context, l *models.Leader) error {
	err := r.db.WithContext(ctx).
		Model(l).
		Omit(clause.Associations).
		Select("name", "position", "department", "college_id", "description", "email", "phone",
			"location", "join_date", "team_size", "image", "is_cabinet", "updated_at").
		Updates(l).Error
	if err != nil {
		return fmt.Errorf("update leader: %w", err)
	}
	return nil
}

// ReplaceAchievements deletes the current set and inserts achievements with order 0..n-1.
func (r *leaderRepository) ReplaceAchievements(ctx context.Context, leaderID int64, achievements []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("leader_id = ?", leaderID).Delete(&models.LeaderAchievement{}).Error; err != nil {
		return fmt.Errorf("clear achievements: %w", err)
	}
	if len(achievements) == 0 {
		return nil
	}
	rows := make([]models.LeaderAchievement, 0, len(achievements))
	for i, a := range achievements {
		rows = append(rows, models.LeaderAchievement{LeaderID: leaderID, Achievement: a, Order: i})
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("create achievements: %w", err)
	}
	return nil
}

func (r *leaderRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("leader_id = ?", id).Delete(&models.LeaderAchievement{}).Error; err != nil {
		return fmt.Errorf("delete achievements: %w", err)
	}
	res := db.Delete(&models.Leader{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete leader: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *leaderRepository) Stats(ctx context.Context) (*LeaderStats, error) {
	db := r.db.WithContext(ctx)
	stats := &LeaderStats{DepartmentCounts: map[string]int64{}, Departments: []string{}}

	var agg struct {
		Total    int64
		TeamSize int64
	}
	if err := db.Model(&models.Leader{}).
		Select("COUNT(*) AS total, COALESCE(SUM(team_size), 0) AS team_size").
		Scan(&agg).Error; err != nil {
		return nil, fmt.Errorf("leader totals: %w", err)
	}
	stats.Total = agg.Total
	stats.TotalTeamSize = agg.TeamSize

	var rows []struct {
		Department string
		Total      int64
	}
	if err := db.Model(&models.Leader{}).
		Select("department, COUNT(*) AS total").
		Group("department").
		Order("department ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("leader departments: %w", err)
	}
	for _, row := range rows {
		stats.DepartmentCounts[row.Department] = row.Total
		stats.Departments = append(stats.Departments, row.Department)
	}
	return stats, nil
}
