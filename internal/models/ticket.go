package models

import (
	"fmt"
	"time"
)

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// TicketPriority orders staff attention on tickets.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TicketResponse is one message in a ticket's conversation thread.
type TicketResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ticket is a support request opened by a user and handled by staff.
type Ticket struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Username  string           `json:"username"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Category  string           `json:"category,omitempty"`
	Priority  TicketPriority   `json:"priority"`
	Status    TicketStatus     `json:"status"`
	Responses []TicketResponse `json:"responses"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type CreateTicketRequest struct {
	Subject  string         `json:"subject"`
	Message  string         `json:"message"`
	Category string         `json:"category"`
	Priority TicketPriority `json:"priority"`
}

func (r *CreateTicketRequest) Validate() error {
	if r.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if r.Message == "" {
		return fmt.Errorf("message is required")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", r.Priority)
	}
	return nil
}

type TicketResponseRequest struct {
	Message string `json:"message" binding:"required"`
}

// PatchTicketRequest updates status and/or priority; untouched fields stay.
type PatchTicketRequest struct {
	Status   *TicketStatus   `json:"status,omitempty"`
	Priority *TicketPriority `json:"priority,omitempty"`
}
