package repository

import (
	"time"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type PartnerRepository struct {
	store *store.Store
}

func NewPartnerRepository(s *store.Store) *PartnerRepository {
	return &PartnerRepository{store: s}
}

func (r *PartnerRepository) load() ([]models.Partner, error) {
	partners := []models.Partner{}
	if err := r.store.Read(PartnersFile, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

// List returns every partner.
func (r *PartnerRepository) List() ([]models.Partner, error) {
	unlock := r.store.Lock(PartnersFile)
	defer unlock()
	return r.load()
}

// Create appends a new partner.
func (r *PartnerRepository) Create(partner *models.Partner) error {
	unlock := r.store.Lock(PartnersFile)
	defer unlock()

	partners, err := r.load()
	if err != nil {
		return err
	}
	partners = append(partners, *partner)
	return r.store.Write(PartnersFile, partners)
}

// Update applies fn to the matching record, stamps updatedAt, and persists.
func (r *PartnerRepository) Update(id string, fn func(*models.Partner)) (*models.Partner, error) {
	unlock := r.store.Lock(PartnersFile)
	defer unlock()

	partners, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range partners {
		if partners[i].ID == id {
			fn(&partners[i])
			partners[i].UpdatedAt = time.Now().UTC()
			if err := r.store.Write(PartnersFile, partners); err != nil {
				return nil, err
			}
			p := partners[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the partner with the given id and returns it.
func (r *PartnerRepository) Delete(id string) (*models.Partner, error) {
	unlock := r.store.Lock(PartnersFile)
	defer unlock()

	partners, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range partners {
		if partners[i].ID == id {
			deleted := partners[i]
			partners = append(partners[:i], partners[i+1:]...)
			if err := r.store.Write(PartnersFile, partners); err != nil {
				return nil, err
			}
			return &deleted, nil
		}
	}
	return nil, ErrNotFound
}
