package repository

import (
	"strings"
	"time"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type ServerRepository struct {
	store *store.Store
}

func NewServerRepository(s *store.Store) *ServerRepository {
	return &ServerRepository{store: s}
}

func (r *ServerRepository) load() ([]models.Server, error) {
	servers := []models.Server{}
	if err := r.store.Read(ServersFile, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// List returns every server record.
func (r *ServerRepository) List() ([]models.Server, error) {
	unlock := r.store.Lock(ServersFile)
	defer unlock()
	return r.load()
}

// ListByStatus returns servers in the given review state.
func (r *ServerRepository) ListByStatus(status models.ServerStatus) ([]models.Server, error) {
	unlock := r.store.Lock(ServersFile)
	defer unlock()

	servers, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Server{}
	for _, s := range servers {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

// Get returns the server with the given id.
func (r *ServerRepository) Get(id string) (*models.Server, error) {
	unlock := r.store.Lock(ServersFile)
	defer unlock()

	servers, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range servers {
		if servers[i].ID == id {
			return &servers[i], nil
		}
	}
	return nil, ErrNotFound
}

// Search filters servers by a name/id substring and optionally by the
// suspended flag.
func (r *ServerRepository) Search(query string, suspended *bool) ([]models.Server, error) {
	unlock := r.store.Lock(ServersFile)
	defer unlock()

	servers, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Server{}
	q := strings.ToLower(query)
	for _, s := range servers {
		if q != "" && !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(s.ID, query) {
			continue
		}
		if suspended != nil && s.Suspended != *suspended {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Create appends a new server record.
func (r *ServerRepository) Create(server *models.Server) error {
	unlock := r.store.Lock(ServersFile)
	defer unlock()

	servers, err := r.load()
	if err != nil {
		return err
	}
	servers = append(servers, *server)
	return r.store.Write(ServersFile, servers)
}

// Update applies fn to the matching record under the collection lock and
// persists the result.
func (r *ServerRepository) Update(id string, fn func(*models.Server)) (*models.Server, error) {
	unlock := r.store.Lock(ServersFile)
	defer unlock()

	servers, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range servers {
		if servers[i].ID == id {
			fn(&servers[i])
			servers[i].UpdatedAt = time.Now().UTC()
			if err := r.store.Write(ServersFile, servers); err != nil {
				return nil, err
			}
			s := servers[i]
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the server with the given id.
func (r *ServerRepository) Delete(id string) error {
	unlock := r.store.Lock(ServersFile)
	defer unlock()

	servers, err := r.load()
	if err != nil {
		return err
	}
	filtered := servers[:0:0]
	for _, s := range servers {
		if s.ID != id {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == len(servers) {
		return ErrNotFound
	}
	return r.store.Write(ServersFile, filtered)
}

// SetStatus transitions the review state. Idempotent: setting the current
// status re-persists the record unchanged.
func (r *ServerRepository) SetStatus(id string, status models.ServerStatus) (*models.Server, error) {
	return r.Update(id, func(s *models.Server) {
		s.Status = status
	})
}

// Suspend marks the server suspended with the audit fields stamped.
func (r *ServerRepository) Suspend(id, reason, by string) (*models.Server, error) {
	return r.Update(id, func(s *models.Server) {
		now := time.Now().UTC()
		s.Suspended = true
		s.SuspensionReason = reason
		s.SuspendedAt = &now
		s.SuspendedBy = by
	})
}

// Unsuspend lifts a suspension and clears the audit fields.
func (r *ServerRepository) Unsuspend(id string) (*models.Server, error) {
	return r.Update(id, func(s *models.Server) {
		s.Suspended = false
		s.SuspensionReason = ""
		s.SuspendedAt = nil
		s.SuspendedBy = ""
	})
}

// SetRatingStats stores the recomputed rating aggregate.
func (r *ServerRepository) SetRatingStats(id string, average float64, total int) (*models.Server, error) {
	return r.Update(id, func(s *models.Server) {
		s.AverageRating = average
		s.TotalRatings = total
	})
}
