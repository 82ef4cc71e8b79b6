package repository

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type RatingRepository struct {
	store *store.Store
}

func NewRatingRepository(s *store.Store) *RatingRepository {
	return &RatingRepository{store: s}
}

func (r *RatingRepository) load() ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := r.store.Read(RatingsFile, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// List returns every rating record.
func (r *RatingRepository) List() ([]models.Rating, error) {
	unlock := r.store.Lock(RatingsFile)
	defer unlock()
	return r.load()
}

// ListByServer returns the ratings for one server.
func (r *RatingRepository) ListByServer(serverID string) ([]models.Rating, error) {
	unlock := r.store.Lock(RatingsFile)
	defer unlock()

	ratings, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Rating{}
	for _, rt := range ratings {
		if rt.ServerID == serverID {
			out = append(out, rt)
		}
	}
	return out, nil
}

// GetByUserAndServer returns the user's rating for a server, if any.
func (r *RatingRepository) GetByUserAndServer(userID, serverID string) (*models.Rating, error) {
	unlock := r.store.Lock(RatingsFile)
	defer unlock()

	ratings, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range ratings {
		if ratings[i].UserID == userID && ratings[i].ServerID == serverID {
			return &ratings[i], nil
		}
	}
	return nil, ErrNotFound
}

// Upsert records the user's rating for a server, updating in place when a
// rating for the (user, server) pair already exists.
func (r *RatingRepository) Upsert(userID, serverID string, value int) (*models.Rating, error) {
	unlock := r.store.Lock(RatingsFile)
	defer unlock()

	ratings, err := r.load()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range ratings {
		if ratings[i].UserID == userID && ratings[i].ServerID == serverID {
			ratings[i].Rating = value
			ratings[i].UpdatedAt = now
			if err := r.store.Write(RatingsFile, ratings); err != nil {
				return nil, err
			}
			rt := ratings[i]
			return &rt, nil
		}
	}

	rating := models.Rating{
		ID:        uuid.New().String(),
		UserID:    userID,
		ServerID:  serverID,
		Rating:    value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ratings = append(ratings, rating)
	if err := r.store.Write(RatingsFile, ratings); err != nil {
		return nil, err
	}
	return &rating, nil
}

// Delete removes the user's own rating by id.
func (r *RatingRepository) Delete(id, userID string) (*models.Rating, error) {
	unlock := r.store.Lock(RatingsFile)
	defer unlock()

	ratings, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range ratings {
		if ratings[i].ID == id && ratings[i].UserID == userID {
			deleted := ratings[i]
			ratings = append(ratings[:i], ratings[i+1:]...)
			if err := r.store.Write(RatingsFile, ratings); err != nil {
				return nil, err
			}
			return &deleted, nil
		}
	}
	return nil, ErrNotFound
}

// AggregateForServer computes the server's rating mean (rounded to one
// decimal) and count.
func (r *RatingRepository) AggregateForServer(serverID string) (float64, int, error) {
	ratings, err := r.ListByServer(serverID)
	if err != nil {
		return 0, 0, err
	}
	if len(ratings) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, rt := range ratings {
		sum += rt.Rating
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10, len(ratings), nil
}
