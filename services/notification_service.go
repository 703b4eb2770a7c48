package services

import (
	"context"

	"github.com/yeremiapane/jobportal-app/authz"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

// NotificationService manages per-user notification inboxes.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(ctx context.Context, n *models.Notification) error {
	if n.UserID == 0 {
		return utils.BadRequest("notification recipient is required")
	}
	return s.db.WithContext(ctx).Create(n).Error
}

type NotificationPage struct {
	Items       []models.Notification `json:"items"`
	Total       int64                 `json:"total"`
	UnreadCount int64                 `json:"unread_count"`
	Page        int                   `json:"page"`
	Limit       int                   `json:"limit"`
}

// List returns the actor's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, actor authz.Identity, unreadOnly bool, page utils.Page) (*NotificationPage, error) {
	query := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", actor.UserID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, utils.Internal("failed to count notifications", err)
	}

	items := []models.Notification{}
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).Limit(page.Limit).Find(&items).Error; err != nil {
		return nil, utils.Internal("failed to list notifications", err)
	}

	unread, err := s.UnreadCount(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &NotificationPage{Items: items, Total: total, UnreadCount: unread, Page: page.Page, Limit: page.Limit}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor authz.Identity) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.UserID, false).
		Count(&count).Error
	if err != nil {
		return 0, utils.Internal("failed to count unread notifications", err)
	}
	return count, nil
}

// Get returns one of the actor's notifications. Someone else's notification
// is reported as not found.
func (s *NotificationService) Get(ctx context.Context, actor authz.Identity, id uint) (*models.Notification, error) {
	var n models.Notification
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, actor.UserID).First(&n).Error
	if err != nil {
		return nil, lookupError(err, "notification not found")
	}
	return &n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actor authz.Identity, id uint) (*models.Notification, error) {
	n, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	if err := s.db.WithContext(ctx).Model(n).Update("is_read", true).Error; err != nil {
		return nil, utils.Internal("failed to mark notification read", err)
	}
	n.Read = true
	return n, nil
}

// MarkAllRead returns how many notifications changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor authz.Identity) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.UserID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, utils.Internal("failed to mark notifications read", result.Error)
	}
	return result.RowsAffected, nil
}
