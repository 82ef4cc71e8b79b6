package repository

import (
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type ActivityRepository struct {
	store *store.Store
}

func NewActivityRepository(s *store.Store) *ActivityRepository {
	return &ActivityRepository{store: s}
}

// ListByUser returns one user's audit trail.
func (r *ActivityRepository) ListByUser(userID string) ([]models.Activity, error) {
	unlock := r.store.Lock(ActivityFile)
	defer unlock()

	activities := []models.Activity{}
	if err := r.store.Read(ActivityFile, &activities); err != nil {
		return nil, err
	}
	out := []models.Activity{}
	for _, a := range activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Append records an audit-trail entry. The collection is append-only.
func (r *ActivityRepository) Append(activity models.Activity) error {
	unlock := r.store.Lock(ActivityFile)
	defer unlock()

	activities := []models.Activity{}
	if err := r.store.Read(ActivityFile, &activities); err != nil {
		return err
	}
	activities = append(activities, activity)
	return r.store.Write(ActivityFile, activities)
}
