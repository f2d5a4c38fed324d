package dto

import (
	"time"

	"unionhub/internal/microservices/http-api/models"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID        int64        `json:"id"`
	Author    UserResponse `json:"author"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Author:    FromModelToUserResponse(&c.Author),
		Content:   c.Content,
		Timestamp: c.Timestamp,
		UpdatedAt: c.UpdatedAt,
	}
}
