package models

import "time"

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Read      bool      `gorm:"not null" json:"read"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (Notification) TableName() string {
	return "user_notifications"
}
