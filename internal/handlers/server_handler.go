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

type ServerHandler struct {
	serverRepo *repository.ServerRepository
	userRepo   *repository.UserRepository
	reviewRepo *repository.ReviewRepository
	notifier   *notify.Service
	log        *logrus.Logger
}

func NewServerHandler(serverRepo *repository.ServerRepository, userRepo *repository.UserRepository, reviewRepo *repository.ReviewRepository, notifier *notify.Service, log *logrus.Logger) *ServerHandler {
	return &ServerHandler{serverRepo: serverRepo, userRepo: userRepo, reviewRepo: reviewRepo, notifier: notifier, log: log}
}

// ListApproved returns the public listing: approved servers only,
// suspended or not.
func (h *ServerHandler) ListApproved(c *gin.Context) {
	servers, err := h.serverRepo.ListByStatus(models.ServerApproved)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, servers)
}

// GetStats returns the public landing-page counters.
func (h *ServerHandler) GetStats(c *gin.Context) {
	servers, err := h.serverRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	users, err := h.userRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	reviews, err := h.reviewRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}

	stats := models.Stats{TotalUsers: len(users)}
	for _, s := range servers {
		if s.Status == models.ServerApproved && !s.Suspended {
			stats.TotalServers++
			stats.TotalMembers += s.MemberCount
		}
	}
	for _, r := range reviews {
		for _, s := range servers {
			if s.ID == r.ServerID && s.Status == models.ServerApproved && !s.Suspended {
				stats.TotalReviews++
				break
			}
		}
	}
	c.JSON(http.StatusOK, stats)
}

// GetServer returns one server by id.
func (h *ServerHandler) GetServer(c *gin.Context) {
	server, err := h.serverRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	c.JSON(http.StatusOK, server)
}

// Submit creates a pending server for the session user. Blacklisted users
// are rejected before anything is written.
func (h *ServerHandler) Submit(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	user, err := h.userRepo.Get(sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "User not found")
		return
	}
	if user.Blacklisted {
		ErrorResponse(c, http.StatusForbidden, "Vous êtes blacklisté et ne pouvez pas soumettre de serveur")
		return
	}

	var req models.SubmitServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	tags := []string(req.Tags)
	if tags == nil {
		tags = []string{}
	}
	server := models.Server{
		ID:            uuid.New().String(),
		SubmittedBy:   user.ID,
		Name:          req.Name,
		InviteLink:    req.InviteLink,
		Icon:          req.Icon,
		Banner:        req.Banner,
		Description:   req.Description,
		MemberCount:   int(req.MemberCount),
		ActivityLevel: req.ActivityLevel,
		ServerType:    req.ServerType,
		Category:      req.Category,
		Language:      req.Language,
		Region:        req.Region,
		Tags:          tags,
		Status:        models.ServerPending,
		Suspended:     false,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}
	if err := h.serverRepo.Create(&server); err != nil {
		RepoError(c, h.log, err, "")
		return
	}

	h.notifier.Record(user.ID, "server_submit", "Soumission de serveur", fmt.Sprintf("Vous avez soumis le serveur %q", server.Name))
	h.notifier.Notify(user.ID, "server_submit", "Serveur soumis", fmt.Sprintf("Votre serveur %q a été soumis et est en attente d'approbation", server.Name))
	h.notifier.NotifyStaff(models.RoleModerator, "server_pending", "Nouveau serveur en attente", fmt.Sprintf("Le serveur %q attend une validation", server.Name))

	c.JSON(http.StatusOK, server)
}

// Update lets the owner edit their server's fields.
func (h *ServerHandler) Update(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	server, err := h.serverRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	if server.SubmittedBy != sessionUser.ID {
		ErrorResponse(c, http.StatusForbidden, "Vous n'avez pas l'autorisation de modifier ce serveur")
		return
	}

	var req models.UpdateServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.serverRepo.Update(server.ID, func(s *models.Server) {
		applyServerUpdate(s, &req)
	})
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AdminUpdate lets staff edit any server's fields.
func (h *ServerHandler) AdminUpdate(c *gin.Context) {
	var req models.UpdateServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.serverRepo.Update(c.Param("id"), func(s *models.Server) {
		applyServerUpdate(s, &req)
	})
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func applyServerUpdate(s *models.Server, req *models.UpdateServerRequest) {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.InviteLink != nil {
		s.InviteLink = *req.InviteLink
	}
	if req.Icon != nil {
		s.Icon = *req.Icon
	}
	if req.Banner != nil {
		s.Banner = *req.Banner
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.MemberCount != nil {
		s.MemberCount = int(*req.MemberCount)
	}
	if req.ActivityLevel != nil {
		s.ActivityLevel = *req.ActivityLevel
	}
	if req.ServerType != nil {
		s.ServerType = *req.ServerType
	}
	if req.Category != nil {
		s.Category = *req.Category
	}
	if req.Language != nil {
		s.Language = *req.Language
	}
	if req.Region != nil {
		s.Region = *req.Region
	}
	if req.Tags != nil {
		s.Tags = []string(*req.Tags)
	}
}

// Delete removes a server. The owner may delete their own; staff may
// delete any.
func (h *ServerHandler) Delete(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	server, err := h.serverRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	if server.SubmittedBy != sessionUser.ID && !sessionUser.Role.AtLeast(models.RoleModerator) {
		ErrorResponse(c, http.StatusForbidden, "Vous n'avez pas l'autorisation de supprimer ce serveur")
		return
	}

	if err := h.serverRepo.Delete(server.ID); err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Server deleted successfully"})
}

// ListPending returns servers awaiting review.
func (h *ServerHandler) ListPending(c *gin.Context) {
	servers, err := h.serverRepo.ListByStatus(models.ServerPending)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, servers)
}

// Approve transitions a server to approved and notifies the submitter.
// Approving an already-approved server re-persists it unchanged.
func (h *ServerHandler) Approve(c *gin.Context) {
	server, err := h.serverRepo.SetStatus(c.Param("id"), models.ServerApproved)
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	h.notifier.Notify(server.SubmittedBy, "server_approved", "Serveur approuvé",
		fmt.Sprintf("Votre serveur %q a été approuvé et est maintenant visible", server.Name))
	c.JSON(http.StatusOK, server)
}

// Reject transitions a server to rejected and notifies the submitter.
func (h *ServerHandler) Reject(c *gin.Context) {
	server, err := h.serverRepo.SetStatus(c.Param("id"), models.ServerRejected)
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	h.notifier.Notify(server.SubmittedBy, "server_rejected", "Serveur rejeté",
		fmt.Sprintf("Votre serveur %q a été rejeté", server.Name))
	c.JSON(http.StatusOK, server)
}

// Suspend hides a server from moderated views and notifies the owner.
func (h *ServerHandler) Suspend(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.SuspendServerRequest
	_ = c.ShouldBindJSON(&req)

	server, err := h.serverRepo.Suspend(c.Param("id"), req.Reason, sessionUser.Username)
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Non spécifiée"
	}
	h.notifier.Notify(server.SubmittedBy, "server_suspended", "Serveur suspendu",
		fmt.Sprintf("Votre serveur %q a été suspendu. Raison: %s", server.Name, reason))
	c.JSON(http.StatusOK, server)
}

// Unsuspend lifts a suspension.
func (h *ServerHandler) Unsuspend(c *gin.Context) {
	server, err := h.serverRepo.Unsuspend(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}
	h.notifier.Notify(server.SubmittedBy, "server_unsuspended", "Serveur rétabli",
		fmt.Sprintf("Votre serveur %q n'est plus suspendu", server.Name))
	c.JSON(http.StatusOK, server)
}

// Search filters servers by name/id substring and suspended flag (staff).
func (h *ServerHandler) Search(c *gin.Context) {
	var suspended *bool
	switch c.Query("suspended") {
	case "true":
		v := true
		suspended = &v
	case "false":
		v := false
		suspended = &v
	}

	servers, err := h.serverRepo.Search(c.Query("query"), suspended)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, servers)
}
