package repository

import (
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type NotificationRepository struct {
	store *store.Store
}

func NewNotificationRepository(s *store.Store) *NotificationRepository {
	return &NotificationRepository{store: s}
}

func (r *NotificationRepository) load() ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := r.store.Read(NotificationsFile, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListByUser returns one user's notifications.
func (r *NotificationRepository) ListByUser(userID string) ([]models.Notification, error) {
	unlock := r.store.Lock(NotificationsFile)
	defer unlock()

	notifications, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Notification{}
	for _, n := range notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// Create appends one or more notification records in a single write.
func (r *NotificationRepository) Create(records ...models.Notification) error {
	unlock := r.store.Lock(NotificationsFile)
	defer unlock()

	notifications, err := r.load()
	if err != nil {
		return err
	}
	notifications = append(notifications, records...)
	return r.store.Write(NotificationsFile, notifications)
}

// MarkRead flags the user's notification as read.
func (r *NotificationRepository) MarkRead(id, userID string) (*models.Notification, error) {
	unlock := r.store.Lock(NotificationsFile)
	defer unlock()

	notifications, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range notifications {
		if notifications[i].ID == id && notifications[i].UserID == userID {
			notifications[i].Read = true
			if err := r.store.Write(NotificationsFile, notifications); err != nil {
				return nil, err
			}
			n := notifications[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

// MarkAllRead flags every notification of the user as read.
func (r *NotificationRepository) MarkAllRead(userID string) error {
	unlock := r.store.Lock(NotificationsFile)
	defer unlock()

	notifications, err := r.load()
	if err != nil {
		return err
	}
	changed := false
	for i := range notifications {
		if notifications[i].UserID == userID && !notifications[i].Read {
			notifications[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.store.Write(NotificationsFile, notifications)
}

// Delete removes the user's notification by id.
func (r *NotificationRepository) Delete(id, userID string) error {
	unlock := r.store.Lock(NotificationsFile)
	defer unlock()

	notifications, err := r.load()
	if err != nil {
		return err
	}
	filtered := notifications[:0:0]
	for _, n := range notifications {
		if n.ID != id || n.UserID != userID {
			filtered = append(filtered, n)
		}
	}
	if len(filtered) == len(notifications) {
		return ErrNotFound
	}
	return r.store.Write(NotificationsFile, filtered)
}
