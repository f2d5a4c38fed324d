package websocket

import (
	"encoding/json"
	"time"

	"unionhub/internal/microservices/http-api/dto"
)

type EventType string

const (
	TypeNotification EventType = "notification" // a new row in the user's notification feed
	TypeSystem       EventType = "system"       // connection lifecycle messages
)

// Event is the only frame the server writes.
type Event struct {
	Type         EventType                 `json:"type"`
	Notification *dto.NotificationResponse `json:"notification,omitempty"`
	Message      string                    `json:"message,omitempty"`
	Timestamp    time.Time                 `json:"timestamp"`
}

func NewNotificationEvent(n dto.NotificationResponse) *Event {
	return &Event{Type: TypeNotification, Notification: &n, Timestamp: time.Now().UTC()}
}

func NewSystemEvent(message string) *Event {
	return &Event{Type: TypeSystem, Message: message, Timestamp: time.Now().UTC()}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
