package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobServiceOptions struct {
	StatusPolicy JobStatusPolicy
	Listing      ListingPolicy
	// AutoApprove gives new jobs APPROVED moderation instead of
	// PENDING_APPROVAL.
	AutoApprove bool
}

// JobService owns the job posting lifecycle.
type JobService struct {
	db           *gorm.DB
	dispatcher   *Dispatcher
	statusPolicy JobStatusPolicy
	listing      ListingPolicy
	autoApprove  bool
}

func NewJobService(db *gorm.DB, dispatcher *Dispatcher, opts JobServiceOptions) *JobService {
	if opts.StatusPolicy == nil {
		opts.StatusPolicy = PermissiveJobPolicy{}
	}
	return &JobService{
		db:           db,
		dispatcher:   dispatcher,
		statusPolicy: opts.StatusPolicy,
		listing:      opts.Listing,
		autoApprove:  opts.AutoApprove,
	}
}

type CreateJobInput struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	RequiredSkills  []string              `json:"required_skills"`
	SalaryMin       *float64              `json:"salary_min"`
	SalaryMax       *float64              `json:"salary_max"`
	EmploymentType  models.EmploymentType `json:"employment_type"`
	Location        string                `json:"location"`
	ExperienceLevel string                `json:"experience_level"`
	CompanyID       uint                  `json:"company_id"`
	Status          models.JobStatus      `json:"status"`
	ExpiryDate      *time.Time            `json:"expiry_date"`
}

func (in CreateJobInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return utils.BadRequest("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return utils.BadRequest("description is required")
	}
	if in.CompanyID == 0 {
		return utils.BadRequest("company_id is required")
	}
	if in.EmploymentType != "" && !in.EmploymentType.Valid() {
		return utils.BadRequest("invalid employment type %q", in.EmploymentType)
	}
	if in.Status != "" && !in.Status.Valid() {
		return utils.BadRequest("invalid job status %q", in.Status)
	}
	return validateSalary(in.SalaryMin, in.SalaryMax)
}

func validateSalary(lo, hi *float64) error {
	if lo != nil && *lo < 0 || hi != nil && *hi < 0 {
		return utils.BadRequest("salary must not be negative")
	}
	if lo != nil && hi != nil && *lo > *hi {
		return utils.BadRequest("salary_min must not exceed salary_max")
	}
	return nil
}

// Create posts a job for a company the actor owns.
func (s *JobService) Create(ctx context.Context, actor authz.Identity, in CreateJobInput) (*models.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.requireCompanyOwner(ctx, actor, in.CompanyID); err != nil {
		return nil, err
	}

	job := models.Job{
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		RequiredSkills:   normalizeSkills(in.RequiredSkills),
		SalaryMin:        in.SalaryMin,
		SalaryMax:        in.SalaryMax,
		EmploymentType:   in.EmploymentType,
		Location:         in.Location,
		ExperienceLevel:  in.ExperienceLevel,
		CompanyID:        in.CompanyID,
		CreatedBy:        actor.UserID,
		Status:           in.Status,
		ModerationStatus: models.ModerationApproved,
		ExpiryDate:       models.UTC(in.ExpiryDate),
	}
	if job.EmploymentType == "" {
		job.EmploymentType = models.EmploymentFullTime
	}
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}
	if !s.autoApprove {
		job.ModerationStatus = models.ModerationPending
	}

	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, utils.Internal("failed to create job", err)
	}

	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   AuditCreate,
		Resource: ResourceJob,
		Metadata: map[string]interface{}{"job_id": job.ID, "company_id": job.CompanyID},
	})
	return &job, nil
}

func (s *JobService) requireCompanyOwner(ctx context.Context, actor authz.Identity, companyID uint) error {
	var company models.Company
	if err := s.db.WithContext(ctx).Select("id", "created_by").First(&company, companyID).Error; err != nil {
		return lookupError(err, "company not found")
	}
	return authz.RequireOwner(actor, company.CreatedBy, "post jobs for", "companies")
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}

func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, lookupError(err, "job not found")
	}
	return &job, nil
}

// ListMine returns every job the actor owns regardless of state.
func (s *JobService) ListMine(ctx context.Context, actor authz.Identity) ([]models.Job, error) {
	jobs := []models.Job{}
	err := s.db.WithContext(ctx).Where("created_by = ?", actor.UserID).
		Order("created_at DESC").Order("id DESC").Find(&jobs).Error
	if err != nil {
		return nil, utils.Internal("failed to list jobs", err)
	}
	return jobs, nil
}

type SearchJobsInput struct {
	Skills          []string
	Location        string
	SalaryMin       *float64
	SalaryMax       *float64
	ExperienceLevel string
	EmploymentType  models.EmploymentType
	Search          string
	Page            utils.Page
}

type JobPage struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// Search lists publicly visible jobs, newest first.
func (s *JobService) Search(ctx context.Context, in SearchJobsInput) (*JobPage, error) {
	if in.EmploymentType != "" && !in.EmploymentType.Valid() {
		return nil, utils.BadRequest("invalid employment type %q", in.EmploymentType)
	}
	if in.Page.Page < 1 {
		in.Page.Page = 1
	}
	if in.Page.Limit < 1 {
		in.Page.Limit = 10
	}

	query := s.listing.Scope(s.db.WithContext(ctx).Model(&models.Job{}))

	if skills := normalizeSkills(in.Skills); len(skills) > 0 {
		matches := make([]clause.Expression, 0, len(skills))
		for _, key := range models.SkillKeys(skills) {
			matches = append(matches, datatypes.JSONArrayQuery("skill_keys").Contains(key))
		}
		query = query.Where(clause.Or(matches...))
	}
	if in.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(in.Location)+"%")
	}
	if in.SalaryMin != nil {
		query = query.Where("(salary_max IS NULL OR salary_max >= ?)", *in.SalaryMin)
	}
	if in.SalaryMax != nil {
		query = query.Where("salary_min <= ?", *in.SalaryMax)
	}
	if in.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", in.ExperienceLevel)
	}
	if in.EmploymentType != "" {
		query = query.Where("employment_type = ?", in.EmploymentType)
	}
	if in.Search != "" {
		term := "%" + strings.ToLower(in.Search) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", term, term)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, utils.Internal("failed to count jobs", err)
	}

	jobs := []models.Job{}
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(in.Page.Offset()).Limit(in.Page.Limit).Find(&jobs).Error; err != nil {
		return nil, utils.Internal("failed to search jobs", err)
	}

	return &JobPage{Jobs: jobs, Total: total, Page: in.Page.Page, Limit: in.Page.Limit}, nil
}

// Listed reports whether the current listing policy shows job publicly.
func (s *JobService) Listed(job models.Job) bool {
	return s.listing.Listed(job)
}

type UpdateJobInput struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	RequiredSkills  *[]string              `json:"required_skills"`
	SalaryMin       *float64               `json:"salary_min"`
	SalaryMax       *float64               `json:"salary_max"`
	EmploymentType  *models.EmploymentType `json:"employment_type"`
	Location        *string                `json:"location"`
	ExperienceLevel *string                `json:"experience_level"`
	CompanyID       *uint                  `json:"company_id"`
	Status          *models.JobStatus      `json:"status"`
	ExpiryDate      *time.Time             `json:"expiry_date"`
	// ClearExpiry removes the expiry date; JSON null can't be told apart
	// from an absent field.
	ClearExpiry bool `json:"clear_expiry"`
}

// Update applies a partial update to a job the actor owns.
func (s *JobService) Update(ctx context.Context, actor authz.Identity, id uint, in UpdateJobInput) (*models.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actor, job.CreatedBy, "update", "jobs"); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, utils.BadRequest("title must not be empty")
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, utils.BadRequest("description must not be empty")
		}
		updates["description"] = *in.Description
	}
	if in.RequiredSkills != nil {
		job.RequiredSkills = normalizeSkills(*in.RequiredSkills)
		updates["required_skills"] = job.RequiredSkills
		updates["skill_keys"] = models.SkillKeys(job.RequiredSkills)
	}

	salaryMin, salaryMax := job.SalaryMin, job.SalaryMax
	if in.SalaryMin != nil {
		salaryMin = in.SalaryMin
		updates["salary_min"] = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		salaryMax = in.SalaryMax
		updates["salary_max"] = *in.SalaryMax
	}
	if err := validateSalary(salaryMin, salaryMax); err != nil {
		return nil, err
	}

	if in.EmploymentType != nil {
		if !in.EmploymentType.Valid() {
			return nil, utils.BadRequest("invalid employment type %q", *in.EmploymentType)
		}
		updates["employment_type"] = *in.EmploymentType
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.ExperienceLevel != nil {
		updates["experience_level"] = *in.ExperienceLevel
	}
	if in.CompanyID != nil && *in.CompanyID != job.CompanyID {
		if err := s.requireCompanyOwner(ctx, actor, *in.CompanyID); err != nil {
			return nil, err
		}
		updates["company_id"] = *in.CompanyID
	}
	switch {
	case in.ClearExpiry && in.ExpiryDate != nil:
		return nil, utils.BadRequest("expiry_date and clear_expiry are mutually exclusive")
	case in.ClearExpiry:
		updates["expiry_date"] = nil
	case in.ExpiryDate != nil:
		updates["expiry_date"] = models.UTC(in.ExpiryDate)
	}
	statusChanged := false
	if in.Status != nil && *in.Status != job.Status {
		if err := s.statusPolicy.AllowJobStatus(job.Status, *in.Status); err != nil {
			return nil, err
		}
		updates["status"] = *in.Status
		statusChanged = true
	}

	if len(updates) == 0 {
		return job, nil
	}
	if err := s.db.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
		return nil, utils.Internal("failed to update job", err)
	}

	action := AuditUpdate
	if statusChanged {
		action = AuditUpdateStatus
	}
	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   action,
		Resource: ResourceJob,
		Metadata: map[string]interface{}{"job_id": job.ID},
	})
	return s.Get(ctx, id)
}

// UpdateStatus is the owner's status change. Moderation is left untouched.
func (s *JobService) UpdateStatus(ctx context.Context, actor authz.Identity, id uint, status models.JobStatus) (*models.Job, error) {
	if !status.Valid() {
		return nil, utils.BadRequest("invalid job status %q", status)
	}
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(actor, job.CreatedBy, "update", "jobs"); err != nil {
		return nil, err
	}
	if err := s.statusPolicy.AllowJobStatus(job.Status, status); err != nil {
		return nil, err
	}

	previous := job.Status
	if err := s.db.WithContext(ctx).Model(job).Update("status", status).Error; err != nil {
		return nil, utils.Internal("failed to update job status", err)
	}
	job.Status = status

	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   AuditUpdateStatus,
		Resource: ResourceJob,
		Metadata: map[string]interface{}{"job_id": job.ID, "from": previous, "to": status},
	})
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, actor authz.Identity, id uint) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(actor, job.CreatedBy, "delete", "jobs"); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Job{}, job.ID).Error; err != nil {
		return utils.Internal("failed to delete job", err)
	}

	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   AuditDelete,
		Resource: ResourceJob,
		Metadata: map[string]interface{}{"job_id": job.ID, "title": job.Title},
	})
	return nil
}

// Moderate sets the moderation axis. It does not check ownership; the caller
// is gated on admin permissions. An empty status means APPROVED.
func (s *JobService) Moderate(ctx context.Context, actor authz.Identity, id uint, status models.ModerationStatus) (*models.Job, error) {
	if status == "" {
		status = models.ModerationApproved
	}
	if !status.Valid() {
		return nil, utils.BadRequest("invalid moderation status %q", status)
	}
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(job).Update("moderation_status", status).Error; err != nil {
		return nil, utils.Internal("failed to moderate job", err)
	}
	job.ModerationStatus = status

	utils.InfoLogger.WithFields(logrus.Fields{
		"job_id":       job.ID,
		"moderator_id": actor.UserID,
		"moderation":   status,
	}).Info("job moderated")

	s.dispatcher.Dispatch(ctx, AuditEffect{
		UserID:   actor.UserID,
		Action:   AuditModerate,
		Resource: ResourceJob,
		Metadata: map[string]interface{}{"job_id": job.ID, "moderation_status": status},
	})
	return job, nil
}

// ListPendingModeration returns jobs waiting for a moderator, oldest first.
func (s *JobService) ListPendingModeration(ctx context.Context) ([]models.Job, error) {
	jobs := []models.Job{}
	err := s.db.WithContext(ctx).Where("moderation_status = ?", models.ModerationPending).
		Order("created_at ASC").Order("id ASC").Find(&jobs).Error
	if err != nil {
		return nil, utils.Internal("failed to list pending jobs", err)
	}
	return jobs, nil
}

type CompanySummary struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Logo               string `json:"logo,omitempty"`
	VerificationStatus string `json:"verification_status"`
}

// JobView is a job with its references resolved.
type JobView struct {
	models.Job
	Company *CompanySummary     `json:"company,omitempty"`
	Owner   *models.UserSummary `json:"owner,omitempty"`
}

// Expand resolves the company and owner of each job with one query per
// referenced table. Missing references stay nil.
func (s *JobService) Expand(ctx context.Context, jobs []models.Job) ([]JobView, error) {
	views := make([]JobView, len(jobs))
	if len(jobs) == 0 {
		return views, nil
	}

	companyIDs := make([]uint, 0, len(jobs))
	ownerIDs := make([]uint, 0, len(jobs))
	for _, job := range jobs {
		companyIDs = append(companyIDs, job.CompanyID)
		ownerIDs = append(ownerIDs, job.CreatedBy)
	}

	var companies []models.Company
	if err := s.db.WithContext(ctx).Where("id IN ?", companyIDs).Find(&companies).Error; err != nil {
		return nil, utils.Internal("failed to resolve companies", err)
	}
	var owners []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ownerIDs).Find(&owners).Error; err != nil {
		return nil, utils.Internal("failed to resolve job owners", err)
	}

	companyByID := make(map[uint]CompanySummary, len(companies))
	for _, c := range companies {
		companyByID[c.ID] = CompanySummary{ID: c.ID, Name: c.Name, Logo: c.Logo, VerificationStatus: c.VerificationStatus}
	}
	ownerByID := make(map[uint]models.UserSummary, len(owners))
	for _, u := range owners {
		ownerByID[u.ID] = u.Summary()
	}

	for i, job := range jobs {
		views[i].Job = job
		if c, ok := companyByID[job.CompanyID]; ok {
			views[i].Company = &c
		}
		if u, ok := ownerByID[job.CreatedBy]; ok {
			views[i].Owner = &u
		}
	}
	return views, nil
}
