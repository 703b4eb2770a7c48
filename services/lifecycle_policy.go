package services

import (
	"fmt"

	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

// JobStatusPolicy decides which owner-driven status changes are legal.
type JobStatusPolicy interface {
	AllowJobStatus(from, to models.JobStatus) error
}

// PermissiveJobPolicy allows any move between DRAFT, OPEN and CLOSED.
type PermissiveJobPolicy struct{}

func (PermissiveJobPolicy) AllowJobStatus(_, to models.JobStatus) error {
	if !to.Valid() {
		return utils.BadRequest("invalid job status %q", to)
	}
	return nil
}

// ApplicationStatusPolicy decides which employer-driven application status
// changes are legal.
type ApplicationStatusPolicy interface {
	AllowApplicationStatus(from, to models.ApplicationStatus) error
}

// PermissiveApplicationPolicy allows any status to follow any other.
type PermissiveApplicationPolicy struct{}

func (PermissiveApplicationPolicy) AllowApplicationStatus(_, to models.ApplicationStatus) error {
	if !to.Valid() {
		return utils.BadRequest("invalid application status %q", to)
	}
	return nil
}

// ForwardApplicationPolicy moves an application one step at a time through
// APPLIED, SHORTLISTED, INTERVIEW and HIRED. Any open application may be
// REJECTED. REJECTED and HIRED are terminal. Setting the current status again
// is allowed.
type ForwardApplicationPolicy struct{}

var forwardTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationApplied:     {models.ApplicationShortlisted, models.ApplicationRejected},
	models.ApplicationShortlisted: {models.ApplicationInterview, models.ApplicationRejected},
	models.ApplicationInterview:   {models.ApplicationHired, models.ApplicationRejected},
}

func (ForwardApplicationPolicy) AllowApplicationStatus(from, to models.ApplicationStatus) error {
	if !to.Valid() {
		return utils.BadRequest("invalid application status %q", to)
	}
	if from == to {
		return nil
	}
	for _, next := range forwardTransitions[from] {
		if next == to {
			return nil
		}
	}
	return utils.Forbidden(utils.DenialPolicy, "application cannot move from %s to %s", from, to)
}

// Application status policy names accepted by ApplicationPolicyByName.
const (
	PolicyPermissive = "permissive"
	PolicyForward    = "forward"
)

func ApplicationPolicyByName(name string) (ApplicationStatusPolicy, error) {
	switch name {
	case "", PolicyPermissive:
		return PermissiveApplicationPolicy{}, nil
	case PolicyForward:
		return ForwardApplicationPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown application status policy %q", name)
}

// ListingPolicy decides which jobs appear in public search. An OPEN job is
// listed unless moderation rejected it; with RequireApproval only APPROVED
// jobs are listed.
type ListingPolicy struct {
	RequireApproval bool
}

func (p ListingPolicy) Scope(db *gorm.DB) *gorm.DB {
	db = db.Where("status = ?", models.JobStatusOpen)
	if p.RequireApproval {
		return db.Where("moderation_status = ?", models.ModerationApproved)
	}
	return db.Where("moderation_status <> ?", models.ModerationRejected)
}

func (p ListingPolicy) Listed(job models.Job) bool {
	if p.RequireApproval {
		return job.PubliclyListed()
	}
	return job.Status == models.JobStatusOpen && job.ModerationStatus != models.ModerationRejected
}
