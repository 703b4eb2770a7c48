package models

import "time"

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "APPLIED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationInterview   ApplicationStatus = "INTERVIEW"
	ApplicationRejected    ApplicationStatus = "REJECTED"
	ApplicationHired       ApplicationStatus = "HIRED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplied, ApplicationShortlisted, ApplicationInterview, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

// Application is unique per (JobID, SeekerID); the composite index is what
// closes the race between concurrent identical submissions.
type Application struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	JobID          uint              `gorm:"not null;uniqueIndex:idx_application_job_seeker" json:"job_id"`
	SeekerID       uint              `gorm:"not null;uniqueIndex:idx_application_job_seeker;index" json:"seeker_id"`
	ResumeSnapshot string            `gorm:"type:text" json:"resume_snapshot,omitempty"`
	CoverLetter    string            `gorm:"type:text" json:"cover_letter,omitempty"`
	Status         ApplicationStatus `gorm:"type:varchar(20);not null;default:'APPLIED';index" json:"status"`
	AppliedAt      time.Time         `gorm:"not null" json:"applied_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
