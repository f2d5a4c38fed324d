package models

import "time"

const (
	ActivityComment = "comment"
	ActivityLike    = "like"
	ActivityView    = "view"
	ActivityPost    = "post"
)

// ActivityTypes lists every accepted UserActivity.Type.
var ActivityTypes = []string{ActivityComment, ActivityLike, ActivityView, ActivityPost}

// UserActivity is an append-only feed entry.
type UserActivity struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"-" gorm:"type:uuid;not null;index"`
	Type      string    `json:"type" gorm:"size:20;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
