package repository

import (
	"time"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type TicketRepository struct {
	store *store.Store
}

func NewTicketRepository(s *store.Store) *TicketRepository {
	return &TicketRepository{store: s}
}

func (r *TicketRepository) load() ([]models.Ticket, error) {
	tickets := []models.Ticket{}
	if err := r.store.Read(TicketsFile, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// List returns every ticket record.
func (r *TicketRepository) List() ([]models.Ticket, error) {
	unlock := r.store.Lock(TicketsFile)
	defer unlock()
	return r.load()
}

// ListByUser returns the tickets opened by one user.
func (r *TicketRepository) ListByUser(userID string) ([]models.Ticket, error) {
	unlock := r.store.Lock(TicketsFile)
	defer unlock()

	tickets, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.Ticket{}
	for _, t := range tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Get returns the ticket with the given id.
func (r *TicketRepository) Get(id string) (*models.Ticket, error) {
	unlock := r.store.Lock(TicketsFile)
	defer unlock()

	tickets, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new ticket.
func (r *TicketRepository) Create(ticket *models.Ticket) error {
	unlock := r.store.Lock(TicketsFile)
	defer unlock()

	tickets, err := r.load()
	if err != nil {
		return err
	}
	tickets = append(tickets, *ticket)
	return r.store.Write(TicketsFile, tickets)
}

// Update applies fn to the matching record under the collection lock and
// persists the result.
func (r *TicketRepository) Update(id string, fn func(*models.Ticket)) (*models.Ticket, error) {
	unlock := r.store.Lock(TicketsFile)
	defer unlock()

	tickets, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			fn(&tickets[i])
			tickets[i].UpdatedAt = time.Now().UTC()
			if err := r.store.Write(TicketsFile, tickets); err != nil {
				return nil, err
			}
			t := tickets[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// AppendResponse adds one message to the ticket's thread.
func (r *TicketRepository) AppendResponse(id string, resp models.TicketResponse) (*models.Ticket, error) {
	return r.Update(id, func(t *models.Ticket) {
		t.Responses = append(t.Responses, resp)
	})
}

// Delete removes exactly the ticket with the given id.
func (r *TicketRepository) Delete(id string) error {
	unlock := r.store.Lock(TicketsFile)
	defer unlock()

	tickets, err := r.load()
	if err != nil {
		return err
	}
	filtered := tickets[:0:0]
	for _, t := range tickets {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == len(tickets) {
		return ErrNotFound
	}
	return r.store.Write(TicketsFile, filtered)
}
