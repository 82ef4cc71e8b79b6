package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/repository"
)

// Pusher delivers a freshly created notification to a connected user, if
// any. Implemented by the websocket hub (direct) and by the Redis
// publisher (fan-out through pub/sub).
type Pusher interface {
	Push(userID string, notification models.Notification)
}

// Service creates notification records, fans them out to role sets, and
// records activity entries. Creation is fire-and-forget from the caller's
// point of view: storage failures are logged, never propagated, so a
// failed notification cannot fail the operation that triggered it.
type Service struct {
	notifications *repository.NotificationRepository
	activity      *repository.ActivityRepository
	users         *repository.UserRepository
	pusher        Pusher
	log           *logrus.Logger
}

func NewService(n *repository.NotificationRepository, a *repository.ActivityRepository, u *repository.UserRepository, pusher Pusher, log *logrus.Logger) *Service {
	return &Service{notifications: n, activity: a, users: u, pusher: pusher, log: log}
}

func newNotificationID() string {
	return fmt.Sprintf("notif-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

func newActivityID() string {
	return fmt.Sprintf("activity-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// Notify creates one notification for the user and pushes it if they are
// connected.
func (s *Service) Notify(userID, notifType, title, message string) {
	notification := models.Notification{
		ID:        newNotificationID(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Read:      false,
	}
	if err := s.notifications.Create(notification); err != nil {
		s.log.WithError(err).WithField("userId", userID).Error("failed to create notification")
		return
	}
	if s.pusher != nil {
		s.pusher.Push(userID, notification)
	}
}

// NotifyStaff creates one notification per user whose role is at least min.
func (s *Service) NotifyStaff(min models.Role, notifType, title, message string) {
	staff, err := s.users.ListStaff(min)
	if err != nil {
		s.log.WithError(err).Error("failed to load staff for notification fan-out")
		return
	}
	for _, u := range staff {
		s.Notify(u.ID, notifType, title, message)
	}
}

// Record appends an audit-trail activity entry for the user.
func (s *Service) Record(userID, actType, title, message string) {
	activity := models.Activity{
		ID:        newActivityID(),
		UserID:    userID,
		Type:      actType,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err := s.activity.Append(activity); err != nil {
		s.log.WithError(err).WithField("userId", userID).Error("failed to record activity")
	}
}
