package dto

import "unionhub/internal/microservices/http-api/models"

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	IsActive    bool   `json:"is_active"`
}

func FromModelToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Color:       c.Color,
		IsActive:    c.IsActive,
	}
}

// CategoryRequest serves create, PUT and PATCH. Nil fields are left unchanged on PATCH.
type CategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	IsActive    *bool   `json:"is_active"`
}

type HashtagResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	UsageCount int64  `json:"usage_count"`
}

func FromModelToHashtagResponse(h *models.Hashtag) HashtagResponse {
	return HashtagResponse{ID: h.ID, Name: h.Name, Slug: h.Slug, UsageCount: h.UsageCount}
}
