package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/notify"
	"github.com/gamehub/backend/internal/repository"
)

type UserHandler struct {
	userRepo *repository.UserRepository
	notifier *notify.Service
	log      *logrus.Logger
}

func NewUserHandler(userRepo *repository.UserRepository, notifier *notify.Service, log *logrus.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, notifier: notifier, log: log}
}

// List returns every user record (developer).
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateRole changes a user's role. Only developers may grant the
// developer role or modify a user who already holds it.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Role.Valid() {
		ErrorResponse(c, http.StatusBadRequest, "invalid role")
		return
	}

	target, err := h.userRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "User not found")
		return
	}

	if sessionUser.Role != models.RoleDeveloper &&
		(req.Role == models.RoleDeveloper || target.Role == models.RoleDeveloper) {
		ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	updated, err := h.userRepo.Update(target.ID, func(u *models.User) {
		u.Role = req.Role
	})
	if err != nil {
		RepoError(c, h.log, err, "User not found")
		return
	}

	h.notifier.Notify(updated.ID, "role_change", "Rôle mis à jour",
		"Votre rôle est maintenant: "+string(updated.Role))
	c.JSON(http.StatusOK, updated)
}

// Blacklist flags a user; blacklisted users cannot submit servers.
func (h *UserHandler) Blacklist(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.BlacklistRequest
	_ = c.ShouldBindJSON(&req)

	user, err := h.userRepo.SetBlacklisted(c.Param("id"), true, req.Reason, sessionUser.Username)
	if err != nil {
		RepoError(c, h.log, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Unblacklist clears the flag and its audit fields.
func (h *UserHandler) Unblacklist(c *gin.Context) {
	user, err := h.userRepo.SetBlacklisted(c.Param("id"), false, "", "")
	if err != nil {
		RepoError(c, h.log, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
