package models

import "time"

const MaxHashtagLength = 50

type Hashtag struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Slug       string    `json:"slug" gorm:"size:50;uniqueIndex;not null"`
	UsageCount int64     `json:"usage_count" gorm:"not null;default:0;check:usage_count >= 0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Hashtag) TableName() string {
	return "hashtags"
}
