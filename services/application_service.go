package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

// ApplicationService owns job applications. Duplicate submissions are
// rejected by the (job_id, seeker_id) unique index; the lookup before the
// insert only produces a friendlier early answer.
type ApplicationService struct {
	db         *gorm.DB
	dispatcher *Dispatcher
	policy     ApplicationStatusPolicy
	now        func() time.Time
}

func NewApplicationService(db *gorm.DB, dispatcher *Dispatcher, policy ApplicationStatusPolicy) *ApplicationService {
	if policy == nil {
		policy = PermissiveApplicationPolicy{}
	}
	return &ApplicationService{db: db, dispatcher: dispatcher, policy: policy, now: time.Now}
}

type CreateApplicationInput struct {
	JobID          uint   `json:"job_id"`
	ResumeSnapshot string `json:"resume_snapshot"`
	CoverLetter    string `json:"cover_letter"`
}

// Create submits the actor's application to a job.
func (s *ApplicationService) Create(ctx context.Context, actor authz.Identity, in CreateApplicationInput) (*models.Application, error) {
	if in.JobID == 0 {
		return nil, utils.BadRequest("job_id is required")
	}

	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, in.JobID).Error; err != nil {
		return nil, lookupError(err, "job not found")
	}
	if !job.AcceptsApplications() {
		return nil, utils.Forbidden(utils.DenialPolicy, "this job is not accepting applications")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND seeker_id = ?", job.ID, actor.UserID).
		Count(&existing).Error; err != nil {
		return nil, utils.Internal("failed to check existing application", err)
	}
	if existing > 0 {
		return nil, utils.Conflict("you have already applied to this job")
	}

	application := models.Application{
		JobID:          job.ID,
		SeekerID:       actor.UserID,
		ResumeSnapshot: in.ResumeSnapshot,
		CoverLetter:    in.CoverLetter,
		Status:         models.ApplicationApplied,
		AppliedAt:      s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("you have already applied to this job")
		}
		return nil, utils.Internal("failed to create application", err)
	}

	applicationID := application.ID
	s.dispatcher.Dispatch(ctx,
		NotifyEffect{
			UserID:    job.CreatedBy,
			Type:      models.NotificationApplicationSubmitted,
			Title:     "New job application",
			Body:      fmt.Sprintf("A candidate has applied for %q", job.Title),
			RelatedID: &applicationID,
		},
		AuditEffect{
			UserID:   actor.UserID,
			Action:   AuditApply,
			Resource: ResourceJob,
			Metadata: map[string]interface{}{"job_id": job.ID, "application_id": application.ID},
		},
	)
	return &application, nil
}

// jobOwner returns the owner of jobID, or 0 when the job no longer exists.
func (s *ApplicationService) jobOwner(ctx context.Context, jobID uint) (uint, string, error) {
	var job models.Job
	err := s.db.WithContext(ctx).Select("id", "created_by", "title").First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", utils.Internal("failed to load job", err)
	}
	return job.CreatedBy, job.Title, nil
}

func (s *ApplicationService) find(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	if err := s.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return nil, lookupError(err, "application not found")
	}
	return &application, nil
}

// Get returns an application to its seeker or to the job's owner.
func (s *ApplicationService) Get(ctx context.Context, actor authz.Identity, id uint) (*models.Application, error) {
	application, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, _, err := s.jobOwner(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanViewApplication(actor, application.SeekerID, owner); err != nil {
		return nil, err
	}
	return application, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, actor authz.Identity) ([]models.Application, error) {
	applications := []models.Application{}
	err := s.db.WithContext(ctx).Where("seeker_id = ?", actor.UserID).
		Order("applied_at DESC").Order("id DESC").Find(&applications).Error
	if err != nil {
		return nil, utils.Internal("failed to list applications", err)
	}
	return applications, nil
}

// ListByJob returns the applications of a job the actor owns.
func (s *ApplicationService) ListByJob(ctx context.Context, actor authz.Identity, jobID uint) ([]models.Application, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).Select("id", "created_by").First(&job, jobID).Error; err != nil {
		return nil, lookupError(err, "job not found")
	}
	if err := authz.RequireOwner(actor, job.CreatedBy, "view applications for", "jobs"); err != nil {
		return nil, err
	}

	applications := []models.Application{}
	err := s.db.WithContext(ctx).Where("job_id = ?", jobID).
		Order("applied_at DESC").Order("id DESC").Find(&applications).Error
	if err != nil {
		return nil, utils.Internal("failed to list applications", err)
	}
	return applications, nil
}

// UpdateStatus is the employer's decision on an application.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor authz.Identity, id uint, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, utils.BadRequest("invalid application status %q", status)
	}
	application, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, title, err := s.jobOwner(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanSetApplicationStatus(actor, application.SeekerID, owner); err != nil {
		return nil, err
	}
	if err := s.policy.AllowApplicationStatus(application.Status, status); err != nil {
		return nil, err
	}

	previous := application.Status
	if err := s.db.WithContext(ctx).Model(application).Update("status", status).Error; err != nil {
		return nil, utils.Internal("failed to update application status", err)
	}
	application.Status = status

	notify := statusNotification(status, title)
	notify.UserID = application.SeekerID
	applicationID := application.ID
	notify.RelatedID = &applicationID

	s.dispatcher.Dispatch(ctx,
		notify,
		AuditEffect{
			UserID:   actor.UserID,
			Action:   AuditUpdateStatus,
			Resource: ResourceApplication,
			Metadata: map[string]interface{}{"application_id": application.ID, "from": previous, "to": status},
		},
	)
	return application, nil
}

func statusNotification(status models.ApplicationStatus, jobTitle string) NotifyEffect {
	switch status {
	case models.ApplicationShortlisted:
		return NotifyEffect{
			Type:  models.NotificationCandidateShortlisted,
			Title: "You have been shortlisted",
			Body:  fmt.Sprintf("Your application for %q has been shortlisted", jobTitle),
		}
	case models.ApplicationInterview:
		return NotifyEffect{
			Type:  models.NotificationInterviewScheduled,
			Title: "Interview scheduled",
			Body:  fmt.Sprintf("You have been invited to interview for %q", jobTitle),
		}
	}
	return NotifyEffect{
		Type:  models.NotificationApplicationUpdated,
		Title: "Application status updated",
		Body:  fmt.Sprintf("Your application for %q is now %s", jobTitle, status),
	}
}

// Delete removes an application; allowed for the seeker and the job's owner.
func (s *ApplicationService) Delete(ctx context.Context, actor authz.Identity, id uint) error {
	application, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	owner, _, err := s.jobOwner(ctx, application.JobID)
	if err != nil {
		return err
	}
	if err := authz.CanDeleteApplication(actor, application.SeekerID, owner); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Application{}, application.ID).Error; err != nil {
		return utils.Internal("failed to delete application", err)
	}

	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   AuditDelete,
		Resource: ResourceApplication,
		Metadata: map[string]interface{}{"application_id": application.ID, "job_id": application.JobID},
	})
	return nil
}
