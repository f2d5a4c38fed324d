package models

import (
	"time"

	"gorm.io/datatypes"
)

// Cabinet positions accepted for Leader.Position.
var LeaderPositions = []string{
	"President",
	"Vice President",
	"Secretary General",
	"Deputy Secretary General",
	"Treasurer",
	"Minister",
	"Deputy Minister",
	"Director",
	"Other",
}

func IsLeaderPosition(p string) bool {
	for _, v := range LeaderPositions {
		if v == p {
			return true
		}
	}
	return false
}

type Leader struct {
	ID          int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"size:200;not null;index"`
	Position    string          `json:"position" gorm:"size:50;not null;index"`
	Department  string          `json:"department" gorm:"size:200;index"`
	CollegeID   *int64          `json:"college" gorm:"index"`
	Description string          `json:"description" gorm:"type:text"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone" gorm:"size:20"`
	Location    string          `json:"location" gorm:"size:200"`
	JoinDate    *datatypes.Date `json:"join_date"`
	TeamSize    int             `json:"team_size" gorm:"not null;default:0;check:team_size >= 0"`
	Image       string          `json:"image"`
	IsCabinet   bool            `json:"is_cabinet" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	College      *College            `json:"-" gorm:"foreignKey:CollegeID;constraint:OnDelete:SET NULL;"`
	Achievements []LeaderAchievement `json:"achievements" gorm:"foreignKey:LeaderID;constraint:OnDelete:CASCADE;"`
}

func (Leader) TableName() string {
	return "leaders"
}

// LeaderAchievement rows of one leader form a dense 0..n-1 order sequence.
type LeaderAchievement struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	LeaderID    int64  `json:"-" gorm:"not null;index"`
	Achievement string `json:"achievement" gorm:"size:500;not null"`
	Order       int    `json:"order" gorm:"column:sort_order;not null"`
}

func (LeaderAchievement) TableName() string {
	return "leader_achievements"
}
