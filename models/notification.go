package models

import (
	"time"
)

type NotificationType string

const (
	NotificationApplicationSubmitted NotificationType = "job_application_submitted"
	NotificationCandidateShortlisted NotificationType = "candidate_shortlisted"
	NotificationInterviewScheduled   NotificationType = "interview_scheduled"
	NotificationJobExpiringSoon      NotificationType = "job_expiring_soon"
	NotificationApplicationUpdated   NotificationType = "application_status_updated"
)

// Notification is append-only apart from the Read flag.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index;index:idx_notification_user_read" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(64);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Body      string           `gorm:"type:text;not null" json:"body"`
	RelatedID *uint            `json:"related_id,omitempty"`
	Read      bool             `gorm:"column:is_read;not null;default:false;index:idx_notification_user_read" json:"read"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
