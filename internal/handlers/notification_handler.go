package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/repository"
)

type NotificationHandler struct {
	notificationRepo *repository.NotificationRepository
	activityRepo     *repository.ActivityRepository
	log              *logrus.Logger
}

func NewNotificationHandler(
	notificationRepo *repository.NotificationRepository,
	activityRepo *repository.ActivityRepository,
	log *logrus.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
		log:              log,
	}
}

// List returns the session user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	notifications, err := h.notificationRepo.ListByUser(sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	notification, err := h.notificationRepo.MarkRead(c.Param("id"), sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "Notification non trouvée")
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	if err := h.notificationRepo.MarkAllRead(sessionUser.ID); err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	if err := h.notificationRepo.Delete(c.Param("id"), sessionUser.ID); err != nil {
		RepoError(c, h.log, err, "Notification non trouvée")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListActivity returns the session user's activity log, newest first.
func (h *NotificationHandler) ListActivity(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	activity, err := h.activityRepo.ListByUser(sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, activity)
}
