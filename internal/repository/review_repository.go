package repository

import (
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type ReviewRepository struct {
	store *store.Store
}

func NewReviewRepository(s *store.Store) *ReviewRepository {
	return &ReviewRepository{store: s}
}

func (r *ReviewRepository) load() ([]models.Review, error) {
	reviews := []models.Review{}
	if err := r.store.Read(ReviewsFile, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// List returns every review record.
func (r *ReviewRepository) List() ([]models.Review, error) {
	unlock := r.store.Lock(ReviewsFile)
	defer unlock()
	return r.load()
}

// ListByServer returns the reviews for one server.
func (r *ReviewRepository) ListByServer(serverID string) ([]models.Review, error) {
	unlock := r.store.Lock(ReviewsFile)
	defer unlock()

	reviews, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Review{}
	for _, rv := range reviews {
		if rv.ServerID == serverID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// Get returns the review with the given id.
func (r *ReviewRepository) Get(id string) (*models.Review, error) {
	unlock := r.store.Lock(ReviewsFile)
	defer unlock()

	reviews, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].ID == id {
			return &reviews[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new review.
func (r *ReviewRepository) Create(review *models.Review) error {
	unlock := r.store.Lock(ReviewsFile)
	defer unlock()

	reviews, err := r.load()
	if err != nil {
		return err
	}
	reviews = append(reviews, *review)
	return r.store.Write(ReviewsFile, reviews)
}

// Delete removes the review with the given id.
func (r *ReviewRepository) Delete(id string) error {
	unlock := r.store.Lock(ReviewsFile)
	defer unlock()

	reviews, err := r.load()
	if err != nil {
		return err
	}
	filtered := reviews[:0:0]
	for _, rv := range reviews {
		if rv.ID != id {
			filtered = append(filtered, rv)
		}
	}
	if len(filtered) == len(reviews) {
		return ErrNotFound
	}
	return r.store.Write(ReviewsFile, filtered)
}
