package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/notify"
	"github.com/gamehub/backend/internal/repository"
)

type TicketHandler struct {
	ticketRepo *repository.TicketRepository
	notifier   *notify.Service
	log        *logrus.Logger
}

func NewTicketHandler(ticketRepo *repository.TicketRepository, notifier *notify.Service, log *logrus.Logger) *TicketHandler {
	return &TicketHandler{ticketRepo: ticketRepo, notifier: notifier, log: log}
}

// ListMine returns the session user's tickets.
func (h *TicketHandler) ListMine(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	tickets, err := h.ticketRepo.ListByUser(sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// Create opens a ticket for the session user and alerts staff.
func (h *TicketHandler) Create(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	now := time.Now().UTC()
	ticket := models.Ticket{
		ID:        uuid.New().String(),
		UserID:    sessionUser.ID,
		Username:  sessionUser.Username,
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Priority:  priority,
		Status:    models.TicketOpen,
		Responses: []models.TicketResponse{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.ticketRepo.Create(&ticket); err != nil {
		RepoError(c, h.log, err, "")
		return
	}

	h.notifier.Record(sessionUser.ID, "ticket_open", "Ticket de support", fmt.Sprintf("Vous avez ouvert un ticket: %q", ticket.Subject))
	h.notifier.Notify(sessionUser.ID, "ticket_open", "Ticket ouvert", fmt.Sprintf("Votre ticket %q a été ouvert", ticket.Subject))
	h.notifier.NotifyStaff(models.RoleModerator, "ticket_open", "Nouveau ticket", fmt.Sprintf("Ticket %q ouvert par %s", ticket.Subject, ticket.Username))

	c.JSON(http.StatusOK, ticket)
}

// Get returns one ticket; the owner or staff only.
func (h *TicketHandler) Get(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	ticket, err := h.ticketRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Ticket not found")
		return
	}
	if ticket.UserID != sessionUser.ID && !sessionUser.Role.AtLeast(models.RoleModerator) {
		ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Respond appends a message to the ticket thread; the owner or staff. The
// other side gets a notification.
func (h *TicketHandler) Respond(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.TicketResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := h.ticketRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Ticket not found")
		return
	}
	isStaff := sessionUser.Role.AtLeast(models.RoleModerator)
	if ticket.UserID != sessionUser.ID && !isStaff {
		ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	response := models.TicketResponse{
		ID:        uuid.New().String(),
		UserID:    sessionUser.ID,
		Username:  sessionUser.Username,
		Message:   req.Message,
		IsAdmin:   isStaff,
		CreatedAt: time.Now().UTC(),
	}
	updated, err := h.ticketRepo.AppendResponse(ticket.ID, response)
	if err != nil {
		RepoError(c, h.log, err, "Ticket not found")
		return
	}

	if isStaff && ticket.UserID != sessionUser.ID {
		h.notifier.Notify(ticket.UserID, "ticket_response", "Réponse à votre ticket",
			fmt.Sprintf("Votre ticket %q a reçu une réponse", ticket.Subject))
	} else {
		h.notifier.NotifyStaff(models.RoleModerator, "ticket_response", "Réponse sur un ticket",
			fmt.Sprintf("Le ticket %q a reçu une réponse de %s", ticket.Subject, sessionUser.Username))
	}

	c.JSON(http.StatusOK, updated)
}

// ListAll returns every ticket (staff).
func (h *TicketHandler) ListAll(c *gin.Context) {
	tickets, err := h.ticketRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// Patch updates status and/or priority (staff). The owner is notified on
// status changes.
func (h *TicketHandler) Patch(c *gin.Context) {
	var req models.PatchTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid status %q", *req.Status))
		return
	}
	if req.Priority != nil && !req.Priority.Valid() {
		ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid priority %q", *req.Priority))
		return
	}

	statusChanged := false
	ticket, err := h.ticketRepo.Update(c.Param("id"), func(t *models.Ticket) {
		if req.Status != nil && *req.Status != t.Status {
			t.Status = *req.Status
			statusChanged = true
		}
		if req.Priority != nil {
			t.Priority = *req.Priority
		}
	})
	if err != nil {
		RepoError(c, h.log, err, "Ticket non trouvé")
		return
	}

	if statusChanged {
		h.notifier.Notify(ticket.UserID, "ticket_status", "Statut du ticket mis à jour",
			fmt.Sprintf("Votre ticket %q est maintenant %q", ticket.Subject, ticket.Status))
	}
	c.JSON(http.StatusOK, ticket)
}

// Delete removes exactly one ticket by id (staff).
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.ticketRepo.Delete(c.Param("id")); err != nil {
		RepoError(c, h.log, err, "Ticket non trouvé")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket supprimé"})
}
