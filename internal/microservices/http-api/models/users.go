package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         string          `gorm:"primaryKey;type:uuid" json:"id"`
	Username   string          `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email      string          `gorm:"uniqueIndex;not null" json:"email"`
	Password   string          `gorm:"column:password_hash;not null" json:"-"` // never serialized
	FirstName  string          `gorm:"size:150" json:"first_name"`
	LastName   string          `gorm:"size:150" json:"last_name"`
	Phone      string          `gorm:"size:20" json:"phone"`
	Location   string          `gorm:"size:100" json:"location"`
	Department string          `gorm:"size:100" json:"department"`
	Position   string          `gorm:"size:100" json:"position"`
	JoinDate   *datatypes.Date `json:"join_date,omitempty"`
	Bio        string          `gorm:"type:text" json:"bio"`
	Avatar     string          `json:"avatar"`
	Role       string          `gorm:"default:'user';not null" json:"role"` // "user" or "admin"
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	LastLogin  *time.Time      `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

func (user *User) IsAdmin() bool {
	return user != nil && user.Role == RoleAdmin
}

func (User) TableName() string {
	return "users"
}
