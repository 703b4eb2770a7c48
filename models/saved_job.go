package models

import "time"

type SavedJob struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_job_user_job;index" json:"user_id"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_saved_job_user_job" json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}
