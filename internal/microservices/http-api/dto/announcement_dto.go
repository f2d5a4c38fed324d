package dto

import (
	"time"

	"unionhub/internal/microservices/http-api/models"
)

type CreateAnnouncementRequest struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Description  string   `json:"description" binding:"required"`
	CategoryID   *int64   `json:"category_id"`
	Media        string   `json:"media"`
	HashtagNames []string `json:"hashtag_names"`
	IsPinned     *bool    `json:"is_pinned"`
	IsPublished  *bool    `json:"is_published"`
}

// UpdateAnnouncementRequest distinguishes an absent hashtag_names (nil) from an
// explicit empty list, which clears every hashtag.
type UpdateAnnouncementRequest struct {
	Title        *string   `json:"title" binding:"omitempty,max=255"`
	Description  *string   `json:"description"`
	CategoryID   *int64    `json:"category_id"`
	Media        *string   `json:"media"`
	HashtagNames *[]string `json:"hashtag_names"`
	IsPinned     *bool     `json:"is_pinned"`
	IsPublished  *bool     `json:"is_published"`
}

type AnnouncementResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Category      *CategoryResponse `json:"category"`
	Author        UserResponse      `json:"author"`
	Timestamp     time.Time         `json:"timestamp"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Likes         int64             `json:"likes"`
	Media         string            `json:"media"`
	Hashtags      []HashtagResponse `json:"hashtags"`
	HashtagList   []string          `json:"hashtag_list"`
	CommentsCount int64             `json:"comments_count"`
	IsPinned      bool              `json:"is_pinned"`
	IsPublished   bool              `json:"is_published"`
}

type AnnouncementDetailResponse struct {
	AnnouncementResponse
	Comments []CommentResponse `json:"comments"`
}

// FromModelToAnnouncementResponse builds the list representation. commentsCount
// comes from a separate aggregate query.
func FromModelToAnnouncementResponse(a *models.Announcement, commentsCount int64) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Author:        FromModelToUserResponse(&a.Author),
		Timestamp:     a.Timestamp,
		UpdatedAt:     a.UpdatedAt,
		Likes:         a.Likes,
		Media:         a.Media,
		Hashtags:      make([]HashtagResponse, 0, len(a.Hashtags)),
		HashtagList:   make([]string, 0, len(a.Hashtags)),
		CommentsCount: commentsCount,
		IsPinned:      a.IsPinned,
		IsPublished:   a.IsPublished,
	}
	if a.Category != nil {
		c := FromModelToCategoryResponse(a.Category)
		resp.Category = &c
	}
	for i := range a.Hashtags {
		resp.Hashtags = append(resp.Hashtags, FromModelToHashtagResponse(&a.Hashtags[i]))
		resp.HashtagList = append(resp.HashtagList, a.Hashtags[i].Name)
	}
	return resp
}

func FromModelToAnnouncementDetailResponse(a *models.Announcement) AnnouncementDetailResponse {
	detail := AnnouncementDetailResponse{
		AnnouncementResponse: FromModelToAnnouncementResponse(a, int64(len(a.Comments))),
		Comments:             make([]CommentResponse, 0, len(a.Comments)),
	}
	for i := range a.Comments {
		detail.Comments = append(detail.Comments, FromModelToCommentResponse(&a.Comments[i]))
	}
	return detail
}

type LikeResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"` // "liked" or "unliked"
	Likes   int64  `json:"likes"`
}

type PinResponse struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"` // "pinned" or "unpinned"
	IsPinned bool   `json:"is_pinned"`
}

type CategoryStat struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

type PopularHashtag struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	UsageCount int64  `json:"usage_count"`
}

type AnnouncementStatsResponse struct {
	TotalAnnouncements int64            `json:"total_announcements"`
	TotalComments      int64            `json:"total_comments"`
	TotalLikes         int64            `json:"total_likes"`
	TotalCategories    int64            `json:"total_categories"`
	TotalHashtags      int64            `json:"total_hashtags"`
	CategoryStats      []CategoryStat   `json:"category_stats"`
	PopularHashtags    []PopularHashtag `json:"popular_hashtags"`
}
