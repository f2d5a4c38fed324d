package models

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&UserActivity{},
		&Notification{},
		&Category{},
		&Hashtag{},
		&Announcement{},
		&AnnouncementHashtag{},
		&AnnouncementLike{},
		&Comment{},
		&College{},
		&Department{},
		&Leader{},
		&LeaderAchievement{},
	}
}
