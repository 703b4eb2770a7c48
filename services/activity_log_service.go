package services

import (
	"context"
	"encoding/json"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions
const (
	AuditCreate       = "create"
	AuditUpdate       = "update"
	AuditUpdateStatus = "update_status"
	AuditDelete       = "delete"
	AuditApply        = "apply"
	AuditModerate     = "moderate"
	AuditVerify       = "verify"
	AuditBan          = "ban"
)

// Audit resources
const (
	ResourceJob         = "job"
	ResourceApplication = "application"
	ResourceCompany     = "company"
	ResourceUser        = "user"
)

// ActivityLogService appends to and reads the audit trail.
type ActivityLogService struct {
	db *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{db: db}
}

func (s *ActivityLogService) Log(ctx context.Context, userID uint, action, resource string, metadata map[string]interface{}) error {
	entry := models.ActivityLog{
		UserID:   userID,
		Action:   action,
		Resource: resource,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		entry.Metadata = datatypes.JSON(raw)
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

type ActivityLogPage struct {
	Items []models.ActivityLog `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ListMine returns the actor's own audit entries, newest first.
func (s *ActivityLogService) ListMine(ctx context.Context, actor authz.Identity, page utils.Page) (*ActivityLogPage, error) {
	query := s.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("user_id = ?", actor.UserID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, utils.Internal("failed to count activity logs", err)
	}

	items := []models.ActivityLog{}
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit).Find(&items).Error; err != nil {
		return nil, utils.Internal("failed to list activity logs", err)
	}
	return &ActivityLogPage{Items: items, Total: total, Page: page.Page, Limit: page.Limit}, nil
}
