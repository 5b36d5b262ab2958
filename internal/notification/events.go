package notification

import "time"

const (
	// Topic kafka untuk fan-out push notifikasi
	QueuedTopic     = "portal.notifications"
	QueuedEventType = "notification.queued"
)

// QueuedEvent adalah payload outbox yang dikonsumsi push consumer.
type QueuedEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	ReferenceID    *string   `json:"reference_id,omitempty"`
	ReferenceType  *string   `json:"reference_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
