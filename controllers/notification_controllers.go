package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

const (
	notificationsDefaultLimit = 20
	notificationsMaxLimit     = 50
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

// GetMyNotifications lists the caller's inbox; ?unread=true keeps unread only.
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	page, err := utils.ParsePage(c, notificationsDefaultLimit, notificationsMaxLimit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	result, err := nc.Notifications.List(c.Request.Context(), actor, queryBool(c, "unread"), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notifications", result)
}

// GetUnreadCount
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	count, err := nc.Notifications.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread notifications", gin.H{"count": count})
}

// GetNotificationByID
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := nc.Notifications.Get(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification detail", n)
}

// MarkAsRead
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	n, err := nc.Notifications.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", n)
}

// MarkAllAsRead
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if _, err := nc.Notifications.MarkAllRead(c.Request.Context(), actor); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
