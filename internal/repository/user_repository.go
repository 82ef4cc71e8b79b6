package repository

import (
	"fmt"
	"time"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/store"
)

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) load() ([]models.User, error) {
	users := []models.User{}
	if err := r.store.Read(UsersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// List returns every user record.
func (r *UserRepository) List() ([]models.User, error) {
	unlock := r.store.Lock(UsersFile)
	defer unlock()
	return r.load()
}

// Get resolves a user by record id or Discord id.
func (r *UserRepository) Get(id string) (*models.User, error) {
	unlock := r.store.Lock(UsersFile)
	defer unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id || users[i].DiscordID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListBlacklisted returns users with the blacklisted flag set.
func (r *UserRepository) ListBlacklisted() ([]models.User, error) {
	unlock := r.store.Lock(UsersFile)
	defer unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.User{}
	for _, u := range users {
		if u.Blacklisted {
			out = append(out, u)
		}
	}
	return out, nil
}

// ListStaff returns users whose role is at least min, for notification
// fan-out.
func (r *UserRepository) ListStaff(min models.Role) ([]models.User, error) {
	unlock := r.store.Lock(UsersFile)
	defer unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	out := []models.User{}
	for _, u := range users {
		if u.Role.AtLeast(min) {
			out = append(out, u)
		}
	}
	return out, nil
}

// UpsertLogin creates the user on first login or refreshes lastLogin and
// identity fields on a repeat login. Returns the stored record and whether
// it was newly created.
func (r *UserRepository) UpsertLogin(login *models.User) (*models.User, bool, error) {
	unlock := r.store.Lock(UsersFile)
	defer unlock()

	users, err := r.load()
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	for i := range users {
		if users[i].DiscordID == login.DiscordID {
			users[i].Username = login.Username
			users[i].GlobalName = login.GlobalName
			users[i].Avatar = login.Avatar
			users[i].Banner = login.Banner
			if login.Email != "" {
				users[i].Email = login.Email
			}
			users[i].LastLogin = now
			if err := r.store.Write(UsersFile, users); err != nil {
				return nil, false, err
			}
			u := users[i]
			return &u, false, nil
		}
	}

	login.Role = models.RoleUser
	login.Blacklisted = false
	login.LastLogin = now
	if err := login.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid user: %w", err)
	}
	users = append(users, *login)
	if err := r.store.Write(UsersFile, users); err != nil {
		return nil, false, err
	}
	return login, true, nil
}

// Update applies fn to the matching record under the collection lock and
// persists the result.
func (r *UserRepository) Update(id string, fn func(*models.User)) (*models.User, error) {
	unlock := r.store.Lock(UsersFile)
	defer unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id || users[i].DiscordID == id {
			fn(&users[i])
			if err := r.store.Write(UsersFile, users); err != nil {
				return nil, err
			}
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// SetBlacklisted flips the blacklist flag, stamping or clearing the audit
// fields.
func (r *UserRepository) SetBlacklisted(id string, blacklisted bool, reason, by string) (*models.User, error) {
	return r.Update(id, func(u *models.User) {
		u.Blacklisted = blacklisted
		if blacklisted {
			now := time.Now().UTC()
			u.BlacklistReason = reason
			u.BlacklistedAt = &now
			u.BlacklistedBy = by
		} else {
			u.BlacklistReason = ""
			u.BlacklistedAt = nil
			u.BlacklistedBy = ""
		}
	})
}
