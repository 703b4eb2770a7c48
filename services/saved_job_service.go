package services

import (
	"context"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

type SavedJobService struct {
	db *gorm.DB
}

func NewSavedJobService(db *gorm.DB) *SavedJobService {
	return &SavedJobService{db: db}
}

// SavedJobView is a bookmark with its job, which is nil once the job is gone.
type SavedJobView struct {
	models.SavedJob
	Job *models.Job `json:"job,omitempty"`
}

func (s *SavedJobService) Save(ctx context.Context, actor authz.Identity, jobID uint) (*models.SavedJob, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).Select("id").First(&job, jobID).Error; err != nil {
		return nil, lookupError(err, "job not found")
	}

	saved, err := s.IsSaved(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if saved {
		return nil, utils.Conflict("job already saved")
	}

	entry := models.SavedJob{UserID: actor.UserID, JobID: jobID}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, utils.Conflict("job already saved")
		}
		return nil, utils.Internal("failed to save job", err)
	}
	return &entry, nil
}

func (s *SavedJobService) List(ctx context.Context, actor authz.Identity) ([]SavedJobView, error) {
	var entries []models.SavedJob
	err := s.db.WithContext(ctx).Where("user_id = ?", actor.UserID).
		Order("created_at DESC").Order("id DESC").Find(&entries).Error
	if err != nil {
		return nil, utils.Internal("failed to list saved jobs", err)
	}

	views := make([]SavedJobView, len(entries))
	if len(entries) == 0 {
		return views, nil
	}
	jobIDs := make([]uint, len(entries))
	for i, e := range entries {
		jobIDs[i] = e.JobID
	}
	var jobs []models.Job
	if err := s.db.WithContext(ctx).Where("id IN ?", jobIDs).Find(&jobs).Error; err != nil {
		return nil, utils.Internal("failed to resolve saved jobs", err)
	}
	byID := make(map[uint]models.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	for i, e := range entries {
		views[i].SavedJob = e
		if j, ok := byID[e.JobID]; ok {
			views[i].Job = &j
		}
	}
	return views, nil
}

func (s *SavedJobService) IsSaved(ctx context.Context, actor authz.Identity, jobID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.SavedJob{}).
		Where("user_id = ? AND job_id = ?", actor.UserID, jobID).Count(&count).Error
	if err != nil {
		return false, utils.Internal("failed to check saved job", err)
	}
	return count > 0, nil
}

func (s *SavedJobService) Remove(ctx context.Context, actor authz.Identity, jobID uint) error {
	result := s.db.WithContext(ctx).Where("user_id = ? AND job_id = ?", actor.UserID, jobID).Delete(&models.SavedJob{})
	if result.Error != nil {
		return utils.Internal("failed to remove saved job", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFound("saved job not found")
	}
	return nil
}
