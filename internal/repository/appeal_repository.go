package repository

import (
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type AppealRepository struct {
	store *store.Store
}

func NewAppealRepository(s *store.Store) *AppealRepository {
	return &AppealRepository{store: s}
}

func (r *AppealRepository) load() ([]models.Appeal, error) {
	appeals := []models.Appeal{}
	if err := r.store.Read(AppealsFile, &appeals); err != nil {
		return nil, err
	}
	return appeals, nil
}

// List returns every appeal record.
func (r *AppealRepository) List() ([]models.Appeal, error) {
	unlock := r.store.Lock(AppealsFile)
	defer unlock()
	return r.load()
}

// ListByUser returns the appeals submitted by one user.
func (r *AppealRepository) ListByUser(userID string) ([]models.Appeal, error) {
	unlock := r.store.Lock(AppealsFile)
	defer unlock()

	appeals, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Appeal{}
	for _, a := range appeals {
		if a.SubmittedBy == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// PendingForServer returns the server's pending appeal, or ErrNotFound.
func (r *AppealRepository) PendingForServer(serverID string) (*models.Appeal, error) {
	unlock := r.store.Lock(AppealsFile)
	defer unlock()

	appeals, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range appeals {
		if appeals[i].ServerID == serverID && appeals[i].Status == models.AppealPending {
			return &appeals[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new appeal.
func (r *AppealRepository) Create(appeal *models.Appeal) error {
	unlock := r.store.Lock(AppealsFile)
	defer unlock()

	appeals, err := r.load()
	if err != nil {
		return err
	}
	appeals = append(appeals, *appeal)
	return r.store.Write(AppealsFile, appeals)
}

// Update applies fn to the matching record under the collection lock and
// persists the result.
func (r *AppealRepository) Update(id string, fn func(*models.Appeal)) (*models.Appeal, error) {
	unlock := r.store.Lock(AppealsFile)
	defer unlock()

	appeals, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range appeals {
		if appeals[i].ID == id {
			fn(&appeals[i])
			if err := r.store.Write(AppealsFile, appeals); err != nil {
				return nil, err
			}
			a := appeals[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}
