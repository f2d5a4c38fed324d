// Package seed loads the YAML fixture that bootstraps a fresh database with an
// admin account, categories and the organisational directory.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/service"
	"unionhub/internal/middleware/auth"
	"unionhub/internal/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type Admin struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
}

type Department struct {
	Name       string `yaml:"name"`
	LeaderName string `yaml:"leader_name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
}

type College struct {
	Name        string       `yaml:"name"`
	LeaderName  string       `yaml:"leader_name"`
	LeaderImage string       `yaml:"leader_image"`
	Departments []Department `yaml:"departments"`
}

type Leader struct {
	Name         string   `yaml:"name"`
	Position     string   `yaml:"position"`
	Department   string   `yaml:"department"`
	College      string   `yaml:"college"` // college name
	Description  string   `yaml:"description"`
	Email        string   `yaml:"email"`
	Phone        string   `yaml:"phone"`
	Location     string   `yaml:"location"`
	JoinDate     string   `yaml:"join_date"`
	TeamSize     int      `yaml:"team_size"`
	Image        string   `yaml:"image"`
	IsCabinet    *bool    `yaml:"is_cabinet"` // absent means true
	Achievements []string `yaml:"achievements"`
}

type Fixtures struct {
	Admin      *Admin     `yaml:"admin"`
	Categories []Category `yaml:"categories"`
	Colleges   []College  `yaml:"colleges"`
	Leaders    []Leader   `yaml:"leaders"`
}

// Summary counts the rows created by Apply. Rows that already existed are not counted.
type Summary struct {
	Users      int
	Categories int
	Colleges   int
	Leaders    int
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	var problems []string
	if f.Admin != nil {
		if f.Admin.Email == "" || f.Admin.Username == "" {
			problems = append(problems, "admin needs username and email")
		}
		if len(f.Admin.Password) < auth.MinPasswordLength {
			problems = append(problems, fmt.Sprintf("admin password must be at least %d characters", auth.MinPasswordLength))
		}
	}
	colleges := make(map[string]bool, len(f.Colleges))
	for _, c := range f.Colleges {
		if strings.TrimSpace(c.Name) == "" {
			problems = append(problems, "college without name")
		}
		colleges[c.Name] = true
	}
	for _, l := range f.Leaders {
		if !models.IsLeaderPosition(l.Position) {
			problems = append(problems, fmt.Sprintf("leader %q: unknown position %q", l.Name, l.Position))
		}
		if l.College != "" && !colleges[l.College] {
			problems = append(problems, fmt.Sprintf("leader %q: unknown college %q", l.Name, l.College))
		}
		if _, err := dto.ParseDate(l.JoinDate); err != nil {
			problems = append(problems, fmt.Sprintf("leader %q: join_date must be YYYY-MM-DD", l.Name))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid fixtures: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Apply inserts every fixture that is not present yet, in one transaction.
// Rows are matched by natural key, so running it twice is a no-op.
func Apply(ctx context.Context, db *gorm.DB, f *Fixtures) (Summary, error) {
	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if f.Admin != nil {
			created, err := seedAdmin(tx, f.Admin)
			if err != nil {
				return err
			}
			if created {
				sum.Users++
			}
		}

		for _, c := range f.Categories {
			created, err := seedCategory(tx, c)
			if err != nil {
				return err
			}
			if created {
				sum.Categories++
			}
		}

		collegeIDs := make(map[string]int64, len(f.Colleges))
		for _, c := range f.Colleges {
			id, created, err := seedCollege(tx, c)
			if err != nil {
				return err
			}
			collegeIDs[c.Name] = id
			if created {
				sum.Colleges++
			}
		}

		for _, l := range f.Leaders {
			created, err := seedLeader(tx, l, collegeIDs)
			if err != nil {
				return err
			}
			if created {
				sum.Leaders++
			}
		}
		return nil
	})
	return sum, err
}

func seedAdmin(tx *gorm.DB, a *Admin) (bool, error) {
	var existing models.User
	err := tx.Where("LOWER(email) = LOWER(?)", a.Email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("find admin: %w", err)
	}

	hash, err := auth.HashPassword(a.Password)
	if err != nil {
		return false, err
	}
	user := &models.User{
		Username:  a.Username,
		Email:     strings.ToLower(a.Email),
		Password:  hash,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      models.RoleAdmin,
	}
	if err := tx.Create(user).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	logger.Info().Str("email", user.Email).Msg("seeded admin account")
	return true, nil
}

func seedCategory(tx *gorm.DB, c Category) (bool, error) {
	var n int64
	if err := tx.Model(&models.Category{}).Where("name = ?", c.Name).Count(&n).Error; err != nil {
		return false, fmt.Errorf("find category %q: %w", c.Name, err)
	}
	if n > 0 {
		return false, nil
	}

	color := c.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	category := &models.Category{
		Name:        c.Name,
		Slug:        service.Slugify(c.Name, 100),
		Description: c.Description,
		Color:       strings.ToUpper(color),
		IsActive:    true,
	}
	if err := tx.Create(category).Error; err != nil {
		return false, fmt.Errorf("create category %q: %w", c.Name, err)
	}
	return true, nil
}

func seedCollege(tx *gorm.DB, c College) (int64, bool, error) {
	var existing models.College
	err := tx.Where("name = ?", c.Name).First(&existing).Error
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, fmt.Errorf("find college %q: %w", c.Name, err)
	}

	college := &models.College{Name: c.Name, LeaderName: c.LeaderName, LeaderImage: c.LeaderImage}
	for _, d := range c.Departments {
		college.Departments = append(college.Departments, models.Department{
			Name:       d.Name,
			LeaderName: d.LeaderName,
			Email:      d.Email,
			Phone:      d.Phone,
		})
	}
	if err := tx.Create(college).Error; err != nil {
		return 0, false, fmt.Errorf("create college %q: %w", c.Name, err)
	}
	return college.ID, true, nil
}

func (l Leader) cabinet() bool {
	return l.IsCabinet == nil || *l.IsCabinet
}

func seedLeader(tx *gorm.DB, l Leader, collegeIDs map[string]int64) (bool, error) {
	var n int64
	if err := tx.Model(&models.Leader{}).Where("name = ? AND position = ?", l.Name, l.Position).Count(&n).Error; err != nil {
		return false, fmt.Errorf("find leader %q: %w", l.Name, err)
	}
	if n > 0 {
		return false, nil
	}

	joinDate, _ := dto.ParseDate(l.JoinDate)
	leader := &models.Leader{
		Name:        l.Name,
		Position:    l.Position,
		Department:  l.Department,
		Description: l.Description,
		Email:       l.Email,
		Phone:       l.Phone,
		Location:    l.Location,
		JoinDate:    joinDate,
		TeamSize:    l.TeamSize,
		Image:       l.Image,
		IsCabinet:   l.cabinet(),
	}
	if id, ok := collegeIDs[l.College]; ok {
		leader.CollegeID = &id
	}
	for i, a := range l.Achievements {
		leader.Achievements = append(leader.Achievements, models.LeaderAchievement{Achievement: a, Order: i})
	}
	if err := tx.Omit("College").Create(leader).Error; err != nil {
		return false, fmt.Errorf("create leader %q: %w", l.Name, err)
	}
	return true, nil
}
