package models

import "time"

type Comment struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AnnouncementID int64     `json:"announcement_id" gorm:"not null;index"`
	AuthorID       string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Content        string    `json:"content" gorm:"not null;type:text"`
	Timestamp      time.Time `json:"timestamp" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author       User         `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Announcement Announcement `json:"-" gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
