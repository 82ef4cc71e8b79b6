package repository

import (
	"time"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type SanctionRepository struct {
	store *store.Store
}

func NewSanctionRepository(s *store.Store) *SanctionRepository {
	return &SanctionRepository{store: s}
}

func (r *SanctionRepository) load() ([]models.Sanction, error) {
	sanctions := []models.Sanction{}
	if err := r.store.Read(SanctionsFile, &sanctions); err != nil {
		return nil, err
	}
	return sanctions, nil
}

// expireLocked flips active off for sanctions whose expiry has passed and
// persists when anything changed. Caller holds the collection lock.
func (r *SanctionRepository) expireLocked(sanctions []models.Sanction) ([]models.Sanction, error) {
	now := time.Now().UTC()
	changed := false
	for i := range sanctions {
		if sanctions[i].Active && sanctions[i].Expired(now) {
			sanctions[i].Active = false
			changed = true
		}
	}
	if changed {
		if err := r.store.Write(SanctionsFile, sanctions); err != nil {
			return nil, err
		}
	}
	return sanctions, nil
}

// List returns every sanction, lazily deactivating expired ones.
func (r *SanctionRepository) List() ([]models.Sanction, error) {
	unlock := r.store.Lock(SanctionsFile)
	defer unlock()

	sanctions, err := r.load()
	if err != nil {
		return nil, err
	}
	return r.expireLocked(sanctions)
}

// ListByUser returns one user's sanctions, lazily deactivating expired ones.
func (r *SanctionRepository) ListByUser(userID string) ([]models.Sanction, error) {
	unlock := r.store.Lock(SanctionsFile)
	defer unlock()

	sanctions, err := r.load()
	if err != nil {
		return nil, err
	}
	sanctions, err = r.expireLocked(sanctions)
	if err != nil {
		return nil, err
	}
	out := []models.Sanction{}
	for _, s := range sanctions {
		if s.TargetUserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

// Create appends a new sanction.
func (r *SanctionRepository) Create(sanction *models.Sanction) error {
	unlock := r.store.Lock(SanctionsFile)
	defer unlock()

	sanctions, err := r.load()
	if err != nil {
		return err
	}
	sanctions = append(sanctions, *sanction)
	return r.store.Write(SanctionsFile, sanctions)
}

// Delete removes the sanction with the given id and returns it.
func (r *SanctionRepository) Delete(id string) (*models.Sanction, error) {
	unlock := r.store.Lock(SanctionsFile)
	defer unlock()

	sanctions, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range sanctions {
		if sanctions[i].ID == id {
			deleted := sanctions[i]
			sanctions = append(sanctions[:i], sanctions[i+1:]...)
			if err := r.store.Write(SanctionsFile, sanctions); err != nil {
				return nil, err
			}
			return &deleted, nil
		}
	}
	return nil, ErrNotFound
}
