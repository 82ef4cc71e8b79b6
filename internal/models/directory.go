package models

import (
	"fmt"
	"time"
)

// Announcement is a site-wide banner managed by developers.
type Announcement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Date      string `json:"date"` // YYYY-MM-DD
	Active    bool   `json:"active"`
	Priority  string `json:"priority"`
	CreatedBy string `json:"createdBy,omitempty"`
}

type AnnouncementRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Active   *bool  `json:"active,omitempty"`
}

func (r *AnnouncementRequest) Validate() error {
	if r.Title == "" || r.Message == "" {
		return fmt.Errorf("title and message are required")
	}
	return nil
}

// Partner is a partnered community shown on the landing page.
type Partner struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	ExternalLink string    `json:"externalLink,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type PartnerRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Image        *string `json:"image,omitempty"`
	ExternalLink *string `json:"externalLink,omitempty"`
}

// Category is a browsing bucket for servers. The id is the slugified name.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Favorite is a (userId, serverId) join record, unique per pair.
type Favorite struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	ServerID string    `json:"serverId"`
	AddedAt  time.Time `json:"addedAt"`
}
