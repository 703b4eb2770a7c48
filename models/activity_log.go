package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the audit trail. Nothing in the application updates or
// deletes rows of this table.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Action    string         `gorm:"type:varchar(64);not null;index:idx_activity_action_resource" json:"action"`
	Resource  string         `gorm:"type:varchar(64);not null;index:idx_activity_action_resource" json:"resource"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
