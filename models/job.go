package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobStatus is the visibility axis of a job posting.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "DRAFT"
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusClosed:
		return true
	}
	return false
}

// ModerationStatus is independent of JobStatus.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "PENDING_APPROVAL"
	ModerationApproved ModerationStatus = "APPROVED"
	ModerationRejected ModerationStatus = "REJECTED"
)

func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FULL_TIME"
	EmploymentPartTime EmploymentType = "PART_TIME"
	EmploymentContract EmploymentType = "CONTRACT"
	EmploymentRemote   EmploymentType = "REMOTE"
	EmploymentHybrid   EmploymentType = "HYBRID"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentRemote, EmploymentHybrid:
		return true
	}
	return false
}

type Job struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Title            string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description      string                      `gorm:"type:text;not null" json:"description"`
	RequiredSkills   datatypes.JSONSlice[string] `json:"required_skills"`
	SkillKeys        datatypes.JSONSlice[string] `json:"-"`
	SalaryMin        *float64                    `json:"salary_min,omitempty"`
	SalaryMax        *float64                    `json:"salary_max,omitempty"`
	EmploymentType   EmploymentType              `gorm:"type:varchar(20);not null;default:'FULL_TIME';index" json:"employment_type"`
	Location         string                      `gorm:"type:varchar(255);index" json:"location"`
	ExperienceLevel  string                      `gorm:"type:varchar(50)" json:"experience_level,omitempty"`
	CompanyID        uint                        `gorm:"not null;index" json:"company_id"`
	CreatedBy        uint                        `gorm:"not null;index" json:"created_by"`
	Status           JobStatus                   `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	ModerationStatus ModerationStatus            `gorm:"type:varchar(20);not null;default:'APPROVED';index" json:"moderation_status"`
	ExpiryDate       *time.Time                  `gorm:"index" json:"expiry_date,omitempty"`
	CreatedAt        time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// PubliclyListed reports whether the job may appear in public listings when
// moderation approval is required.
func (j Job) PubliclyListed() bool {
	return j.Status == JobStatusOpen && j.ModerationStatus == ModerationApproved
}

// AcceptsApplications reports whether a seeker may apply to the job.
func (j Job) AcceptsApplications() bool {
	return j.Status == JobStatusOpen && j.ModerationStatus != ModerationRejected
}

// BeforeSave keeps SkillKeys, the lowercased skills used by search, in step
// with RequiredSkills and stores the expiry in UTC, since sqlite compares
// times as text. Map updates bypass it and set both columns themselves.
func (j *Job) BeforeSave(tx *gorm.DB) error {
	j.SkillKeys = SkillKeys(j.RequiredSkills)
	j.ExpiryDate = UTC(j.ExpiryDate)
	return nil
}

// SkillKeys returns the lowercased search keys for skills.
func SkillKeys(skills []string) datatypes.JSONSlice[string] {
	keys := make(datatypes.JSONSlice[string], 0, len(skills))
	for _, skill := range skills {
		keys = append(keys, strings.ToLower(strings.TrimSpace(skill)))
	}
	return keys
}

// UTC returns t converted to UTC, or nil.
func UTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
