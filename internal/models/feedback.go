package models

import (
	"fmt"
	"time"
)

// Rating is a numeric 1-5 score, at most one per (userId, serverId) pair.
// Ratings feed the server's averageRating/totalRatings aggregate.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ServerID  string    `json:"serverId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SubmitRatingRequest struct {
	ServerID string `json:"serverId"`
	Rating   int    `json:"rating"`
}

func (r *SubmitRatingRequest) Validate() error {
	if r.ServerID == "" {
		return fmt.Errorf("serverId is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// Review is a score plus free text. Reviews are a separate collection from
// ratings and do not feed the server aggregate.
type Review struct {
	ID        string    `json:"id"`
	ServerID  string    `json:"serverId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateReviewRequest struct {
	ServerID string `json:"serverId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func (r *CreateReviewRequest) Validate() error {
	if r.ServerID == "" || r.Comment == "" {
		return fmt.Errorf("serverId and comment are required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
