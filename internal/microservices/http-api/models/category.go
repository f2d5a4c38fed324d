package models

import "time"

const DefaultCategoryColor = "#3B82F6"

type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Color       string    `json:"color" gorm:"size:7;not null"`
	IsActive    bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	CreatedByID *string   `json:"created_by_id,omitempty" gorm:"type:uuid"`

	CreatedBy *User `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL;"`
}

func (Category) TableName() string {
	return "categories"
}
