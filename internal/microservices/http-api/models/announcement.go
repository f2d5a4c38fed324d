package models

import "time"

// Announcement owns its likes and comments. Likes is a denormalized count of
// AnnouncementLike rows and is only written by the counter recount.
type Announcement struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CategoryID  *int64    `json:"category_id" gorm:"index"`
	AuthorID    string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Timestamp   time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
	Likes       int64     `json:"likes" gorm:"not null;default:0;check:likes >= 0"`
	Media       string    `json:"media"`
	IsPinned    bool      `json:"is_pinned" gorm:"not null;index"`
	IsPublished bool      `json:"is_published" gorm:"not null;index"`

	// Associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Author   User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Hashtags []Hashtag `json:"hashtags" gorm:"many2many:announcement_hashtags;constraint:OnDelete:CASCADE;"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:AnnouncementID"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// HashtagIDs returns the ids of the loaded hashtag association.
func (a *Announcement) HashtagIDs() []int64 {
	ids := make([]int64, 0, len(a.Hashtags))
	for _, h := range a.Hashtags {
		ids = append(ids, h.ID)
	}
	return ids
}

type AnnouncementLike struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AnnouncementID int64     `json:"announcement_id" gorm:"not null;uniqueIndex:idx_announcement_user"`
	UserID         string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_announcement_user;index"`
	Timestamp      time.Time `json:"timestamp" gorm:"autoCreateTime"`

	Announcement Announcement `json:"-" gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE;"`
	User         User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (AnnouncementLike) TableName() string {
	return "announcement_likes"
}

// AnnouncementHashtag is the explicit join row behind Announcement.Hashtags.
type AnnouncementHashtag struct {
	AnnouncementID int64 `json:"announcement_id" gorm:"primaryKey"`
	HashtagID      int64 `json:"hashtag_id" gorm:"primaryKey;index"`
}

func (AnnouncementHashtag) TableName() string {
	return "announcement_hashtags"
}
