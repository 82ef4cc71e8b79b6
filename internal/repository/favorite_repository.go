package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type FavoriteRepository struct {
	store *store.Store
}

func NewFavoriteRepository(s *store.Store) *FavoriteRepository {
	return &FavoriteRepository{store: s}
}

func (r *FavoriteRepository) load() ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	if err := r.store.Read(FavoritesFile, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// ListByUser returns one user's favorites.
func (r *FavoriteRepository) ListByUser(userID string) ([]models.Favorite, error) {
	unlock := r.store.Lock(FavoritesFile)
	defer unlock()

	favorites, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Favorite{}
	for _, f := range favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

// Add records a favorite; the (user, server) pair must be unique.
func (r *FavoriteRepository) Add(userID, serverID string) (*models.Favorite, error) {
	unlock := r.store.Lock(FavoritesFile)
	defer unlock()

	favorites, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, f := range favorites {
		if f.UserID == userID && f.ServerID == serverID {
			return nil, ErrDuplicate
		}
	}

	favorite := models.Favorite{
		ID:       uuid.New().String(),
		UserID:   userID,
		ServerID: serverID,
		AddedAt:  time.Now().UTC(),
	}
	favorites = append(favorites, favorite)
	if err := r.store.Write(FavoritesFile, favorites); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Remove deletes the user's favorite for the given server.
func (r *FavoriteRepository) Remove(userID, serverID string) error {
	unlock := r.store.Lock(FavoritesFile)
	defer unlock()

	favorites, err := r.load()
	if err != nil {
		return err
	}
	filtered := favorites[:0:0]
	for _, f := range favorites {
		if f.UserID != userID || f.ServerID != serverID {
			filtered = append(filtered, f)
		}
	}
	if len(filtered) == len(favorites) {
		return ErrNotFound
	}
	return r.store.Write(FavoritesFile, filtered)
}

// Has reports whether the user has favorited the server.
func (r *FavoriteRepository) Has(userID, serverID string) (bool, error) {
	unlock := r.store.Lock(FavoritesFile)
	defer unlock()

	favorites, err := r.load()
	if err != nil {
		return false, err
	}
	for _, f := range favorites {
		if f.UserID == userID && f.ServerID == serverID {
			return true, nil
		}
	}
	return false, nil
}
