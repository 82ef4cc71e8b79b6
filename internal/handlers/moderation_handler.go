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

type ModerationHandler struct {
	sanctionRepo *repository.SanctionRepository
	appealRepo   *repository.AppealRepository
	serverRepo   *repository.ServerRepository
	userRepo     *repository.UserRepository
	notifier     *notify.Service
	log          *logrus.Logger
}

func NewModerationHandler(
	sanctionRepo *repository.SanctionRepository,
	appealRepo *repository.AppealRepository,
	serverRepo *repository.ServerRepository,
	userRepo *repository.UserRepository,
	notifier *notify.Service,
	log *logrus.Logger,
) *ModerationHandler {
	return &ModerationHandler{
		sanctionRepo: sanctionRepo,
		appealRepo:   appealRepo,
		serverRepo:   serverRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		log:          log,
	}
}

// GetUserRole resolves a user's role by record or Discord id.
func (h *ModerationHandler) GetUserRole(c *gin.Context) {
	user, err := h.userRepo.Get(c.Param("userId"))
	if err != nil {
		RepoError(c, h.log, err, "Utilisateur non trouvé")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role":       user.Role,
		"username":   user.Username,
		"globalName": user.GlobalName,
		"discordId":  user.DiscordID,
	})
}

// ListBlacklisted returns users with the blacklist flag set.
func (h *ModerationHandler) ListBlacklisted(c *gin.Context) {
	users, err := h.userRepo.ListBlacklisted()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// ApplySanction records a sanction against a user. A blacklist sanction
// also flips the target's blacklisted flag.
func (h *ModerationHandler) ApplySanction(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.ApplySanctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	target, err := h.userRepo.Get(req.TargetUserID)
	if err != nil {
		RepoError(c, h.log, err, "Utilisateur non trouvé")
		return
	}

	now := time.Now().UTC()
	sanction := models.Sanction{
		ID:           uuid.New().String(),
		TargetUserID: target.ID,
		Type:         req.Type,
		Duration:     req.Duration,
		Reason:       req.Reason,
		AppliedBy:    sessionUser.Username,
		AppliedAt:    now,
		Active:       true,
	}
	if req.Duration != nil {
		expires := now.Add(time.Duration(*req.Duration) * time.Second)
		sanction.ExpiresAt = &expires
	}
	if err := h.sanctionRepo.Create(&sanction); err != nil {
		RepoError(c, h.log, err, "")
		return
	}

	if req.Type == models.SanctionBlacklist {
		if _, err := h.userRepo.SetBlacklisted(target.ID, true, req.Reason, sessionUser.Username); err != nil {
			h.log.WithError(err).WithField("userId", target.ID).Error("failed to blacklist sanctioned user")
		}
	}

	h.notifier.Notify(target.ID, "sanction", "Sanction appliquée",
		fmt.Sprintf("Une sanction (%s) vous a été appliquée. Raison: %s", sanction.Type, sanction.Reason))
	c.JSON(http.StatusCreated, sanction)
}

// ListSanctions returns every sanction, expiring lazily.
func (h *ModerationHandler) ListSanctions(c *gin.Context) {
	sanctions, err := h.sanctionRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, sanctions)
}

// ListUserSanctions returns one user's sanctions, expiring lazily.
func (h *ModerationHandler) ListUserSanctions(c *gin.Context) {
	sanctions, err := h.sanctionRepo.ListByUser(c.Param("userId"))
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, sanctions)
}

// DeleteSanction removes a sanction record.
func (h *ModerationHandler) DeleteSanction(c *gin.Context) {
	sanction, err := h.sanctionRepo.Delete(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Sanction non trouvée")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sanction supprimée", "sanction": sanction})
}

// CreateAppeal opens an appeal against a suspended server. Only the owner
// (or staff) may appeal, and only while the server is suspended.
func (h *ModerationHandler) CreateAppeal(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.CreateAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.ServerID == "" || req.Explanation == "" {
		ErrorResponse(c, http.StatusBadRequest, "ID du serveur ou explication manquante")
		return
	}

	server, err := h.serverRepo.Get(req.ServerID)
	if err != nil {
		RepoError(c, h.log, err, "Serveur non trouvé")
		return
	}
	if !server.Suspended {
		ErrorResponse(c, http.StatusBadRequest, "Le serveur n'est pas suspendu")
		return
	}
	if server.SubmittedBy != sessionUser.ID && !sessionUser.Role.AtLeast(models.RoleAdmin) {
		ErrorResponse(c, http.StatusForbidden, "Vous n'êtes pas autorisé à contester ce serveur")
		return
	}

	appeal := models.Appeal{
		ID:              uuid.New().String(),
		ServerID:        server.ID,
		ServerName:      server.Name,
		SubmittedBy:     sessionUser.ID,
		SubmittedByName: sessionUser.Username,
		Explanation:     req.Explanation,
		Status:          models.AppealPending,
		SubmittedAt:     time.Now().UTC(),
	}
	if err := h.appealRepo.Create(&appeal); err != nil {
		RepoError(c, h.log, err, "")
		return
	}

	h.notifier.NotifyStaff(models.RoleAdmin, "appeal_submitted", "Nouvel appel",
		fmt.Sprintf("Un appel a été soumis pour le serveur %q", server.Name))
	c.JSON(http.StatusCreated, appeal)
}

// ListUserAppeals returns one user's appeals: themselves or staff.
func (h *ModerationHandler) ListUserAppeals(c *gin.Context) {
	sessionUser, ok := middleware.CurrentUser(c)
	userID := c.Param("userId")
	if !ok || (sessionUser.ID != userID && !sessionUser.Role.AtLeast(models.RoleModerator)) {
		ErrorResponse(c, http.StatusForbidden, "Forbidden")
		return
	}

	appeals, err := h.appealRepo.ListByUser(userID)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, appeals)
}

// GetServerAppeal returns a server's pending appeal, or null.
func (h *ModerationHandler) GetServerAppeal(c *gin.Context) {
	appeal, err := h.appealRepo.PendingForServer(c.Param("serverId"))
	if err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusOK, nil)
			return
		}
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, appeal)
}

// ListAppeals returns every appeal (staff).
func (h *ModerationHandler) ListAppeals(c *gin.Context) {
	appeals, err := h.appealRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, appeals)
}

// DecideAppeal accepts or refuses an appeal. Acceptance unsuspends the
// server; either way the submitter gets exactly one notification.
func (h *ModerationHandler) DecideAppeal(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.DecideAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Decision != models.AppealAccepted && req.Decision != models.AppealRefused {
		ErrorResponse(c, http.StatusBadRequest, "Décision invalide")
		return
	}

	now := time.Now().UTC()
	appeal, err := h.appealRepo.Update(c.Param("id"), func(a *models.Appeal) {
		a.Status = req.Decision
		a.ReviewedBy = sessionUser.ID
		a.ReviewedByName = sessionUser.Username
		a.ReviewedAt = &now
		a.Decision = req.DecisionReason
	})
	if err != nil {
		RepoError(c, h.log, err, "Appel non trouvé")
		return
	}

	if req.Decision == models.AppealAccepted {
		if _, err := h.serverRepo.Unsuspend(appeal.ServerID); err != nil {
			h.log.WithError(err).WithField("serverId", appeal.ServerID).Error("failed to unsuspend server on accepted appeal")
		}
		h.notifier.Notify(appeal.SubmittedBy, "appeal_accepted", "Appel accepté",
			fmt.Sprintf("Votre appel pour le serveur %q a été accepté. Le serveur n'est plus suspendu.", appeal.ServerName))
	} else {
		h.notifier.Notify(appeal.SubmittedBy, "appeal_refused", "Appel refusé",
			fmt.Sprintf("Votre appel pour le serveur %q a été refusé.", appeal.ServerName))
	}

	c.JSON(http.StatusOK, appeal)
}
