package repository

import (
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type AnnouncementRepository struct {
	store *store.Store
}

func NewAnnouncementRepository(s *store.Store) *AnnouncementRepository {
	return &AnnouncementRepository{store: s}
}

func (r *AnnouncementRepository) load() ([]models.Announcement, error) {
	announcements := []models.Announcement{}
	if err := r.store.Read(AnnouncementsFile, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// List returns every announcement.
func (r *AnnouncementRepository) List() ([]models.Announcement, error) {
	unlock := r.store.Lock(AnnouncementsFile)
	defer unlock()
	return r.load()
}

// ListActive returns announcements with the active flag set.
func (r *AnnouncementRepository) ListActive() ([]models.Announcement, error) {
	unlock := r.store.Lock(AnnouncementsFile)
	defer unlock()

	announcements, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Announcement{}
	for _, a := range announcements {
		if a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

// Create appends a new announcement.
func (r *AnnouncementRepository) Create(announcement *models.Announcement) error {
	unlock := r.store.Lock(AnnouncementsFile)
	defer unlock()

	announcements, err := r.load()
	if err != nil {
		return err
	}
	announcements = append(announcements, *announcement)
	return r.store.Write(AnnouncementsFile, announcements)
}

// Update applies fn to the matching record and persists the result.
func (r *AnnouncementRepository) Update(id string, fn func(*models.Announcement)) (*models.Announcement, error) {
	unlock := r.store.Lock(AnnouncementsFile)
	defer unlock()

	announcements, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range announcements {
		if announcements[i].ID == id {
			fn(&announcements[i])
			if err := r.store.Write(AnnouncementsFile, announcements); err != nil {
				return nil, err
			}
			a := announcements[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the announcement with the given id.
func (r *AnnouncementRepository) Delete(id string) error {
	unlock := r.store.Lock(AnnouncementsFile)
	defer unlock()

	announcements, err := r.load()
	if err != nil {
		return err
	}
	filtered := announcements[:0:0]
	for _, a := range announcements {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	if len(filtered) == len(announcements) {
		return ErrNotFound
	}
	return r.store.Write(AnnouncementsFile, filtered)
}
