package repository

import (
	"context"
	"fmt"

	"unionhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnnouncementFilter carries the list query parameters. Nil pointers mean "no filter".
type AnnouncementFilter struct {
	PublishedOnly bool
	CategoryID    *int64
	AuthorID      string
	IsPinned      *bool
	Hashtags      []string
	CategorySlug  string
	Search        string
	Ordering      string
	Pagination
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	FindByID(ctx context.Context, id int64) (*models.Announcement, error)
	FindDetail(ctx context.Context, id int64) (*models.Announcement, error)
	List(ctx context.Context, f AnnouncementFilter) ([]models.Announcement, int64, error)
	Update(ctx context.Context, a *models.Announcement) error
	SetPinned(ctx context.Context, id int64, pinned bool) error
	SetLikes(ctx context.Context, id, likes int64) error
	HashtagIDs(ctx context.Context, id int64) ([]int64, error)
	ReplaceHashtags(ctx context.Context, id int64, hashtagIDs []int64) error
	Delete(ctx context.Context, id int64) error
	CountPublished(ctx context.Context) (int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

const defaultAnnouncementOrder = "announcements.is_pinned DESC, announcements.timestamp DESC"

var announcementOrdering = map[string]string{
	"timestamp":  "announcements.timestamp",
	"likes":      "announcements.likes",
	"updated_at": "announcements.updated_at",
}

// Create inserts the row only. Hashtags are linked separately through ReplaceHashtags
// so the counter recount sees every change.
func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.WithContext(ctx).Preload("Hashtags").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindDetail loads everything the detail view renders.
func (r *announcementRepository) FindDetail(ctx context.Context, id int64) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Hashtags", func(db *gorm.DB) *gorm.DB { return db.Order("hashtags.name ASC") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.timestamp ASC") }).
		Preload("Comments.Author").
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context, f AnnouncementFilter) ([]models.Announcement, int64, error) {
	var list []models.Announcement
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Announcement{})
	if f.PublishedOnly {
		q = q.Where("announcements.is_published = ?", true)
	}
	if f.CategoryID != nil {
		q = q.Where("announcements.category_id = ?", *f.CategoryID)
	}
	if f.AuthorID != "" {
		q = q.Where("announcements.author_id = ?", f.AuthorID)
	}
	if f.IsPinned != nil {
		q = q.Where("announcements.is_pinned = ?", *f.IsPinned)
	}
	if len(f.Hashtags) > 0 {
		// subquery keeps the result distinct when several tags match
		tagged := r.db.Table("announcement_hashtags AS ah").
			Select("ah.announcement_id").
			Joins("JOIN hashtags h ON h.id = ah.hashtag_id").
			Where("h.name IN ?", f.Hashtags)
		q = q.Where("announcements.id IN (?)", tagged)
	}
	if f.CategorySlug != "" {
		q = q.Where("announcements.category_id IN (?)",
			r.db.Model(&models.Category{}).Select("id").Where("slug = ?", f.CategorySlug))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		authors := r.db.Model(&models.User{}).Select("id").
			Where("first_name ILIKE ? OR last_name ILIKE ?", p, p)
		tagged := r.db.Table("announcement_hashtags AS ah").
			Select("ah.announcement_id").
			Joins("JOIN hashtags h ON h.id = ah.hashtag_id").
			Where("h.name ILIKE ?", p)
		q = q.Where("(announcements.title ILIKE ? OR announcements.description ILIKE ? OR announcements.author_id IN (?) OR announcements.id IN (?))",
			p, p, authors, tagged)
	}
	q = q.Session(&gorm.Session{})

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}

	p := f.Pagination.Normalize()
	err := q.
		Preload("Author").
		Preload("Category").
		Preload("Hashtags", func(db *gorm.DB) *gorm.DB { return db.Order("hashtags.name ASC") }).
		Order(orderClause(f.Ordering, announcementOrdering, defaultAnnouncementOrder)).
		Order("announcements.id DESC").
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}
	return list, total, nil
}

// Update writes the editable columns. likes is never touched here.
func (r *announcementRepository) Update(ctx context.Context, a *models.Announcement) error {
	err := r.db.WithContext(ctx).
		Model(a).
		Omit(clause.Associations).
		Select("title", "description", "category_id", "media", "is_pinned", "is_published", "updated_at").
		Updates(a).Error
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) SetPinned(ctx context.Context, id int64, pinned bool) error {
	return r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", id).Update("is_pinned", pinned).Error
}

// SetLikes stores a recounted like total without bumping updated_at.
func (r *announcementRepository) SetLikes(ctx context.Context, id, likes int64) error {
	return r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", id).UpdateColumn("likes", likes).Error
}

func (r *announcementRepository) HashtagIDs(ctx context.Context, id int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.AnnouncementHashtag{}).
		Where("announcement_id = ?", id).
		Order("hashtag_id").
		Pluck("hashtag_id", &ids).Error
	return ids, err
}

// ReplaceHashtags swaps the full link set. An empty slice clears every link.
func (r *announcementRepository) ReplaceHashtags(ctx context.Context, id int64, hashtagIDs []int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("announcement_id = ?", id).Delete(&models.AnnouncementHashtag{}).Error; err != nil {
		return fmt.Errorf("clear hashtags: %w", err)
	}
	if len(hashtagIDs) == 0 {
		return nil
	}
	links := make([]models.AnnouncementHashtag, 0, len(hashtagIDs))
	for _, hid := range hashtagIDs {
		links = append(links, models.AnnouncementHashtag{AnnouncementID: id, HashtagID: hid})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return fmt.Errorf("link hashtags: %w", err)
	}
	return nil
}

// Delete removes the announcement with its links, likes and comments.
// It returns gorm.ErrRecordNotFound when nothing was deleted.
func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("announcement_id = ?", id).Delete(&models.AnnouncementHashtag{}).Error; err != nil {
		return fmt.Errorf("delete announcement links: %w", err)
	}
	if err := db.Where("announcement_id = ?", id).Delete(&models.AnnouncementLike{}).Error; err != nil {
		return fmt.Errorf("delete announcement likes: %w", err)
	}
	if err := db.Where("announcement_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("delete announcement comments: %w", err)
	}
	res := db.Delete(&models.Announcement{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete announcement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *announcementRepository) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Announcement{}).Where("is_published = ?", true).Count(&n).Error
	return n, err
}
