package dto

import (
	"time"

	"unionhub/internal/microservices/http-api/models"
)

type ActivityResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type CreateActivityRequest struct {
	Type  string `json:"type" binding:"required,oneof=comment like view post"`
	Title string `json:"title" binding:"required,max=255"`
}

func FromModelToActivityResponse(a *models.UserActivity) ActivityResponse {
	return ActivityResponse{ID: a.ID, Type: a.Type, Title: a.Title, Timestamp: a.Timestamp}
}

type NotificationResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

func FromModelToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{ID: n.ID, Title: n.Title, Timestamp: n.Timestamp, Read: n.Read}
}
