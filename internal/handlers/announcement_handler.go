package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/repository"
)

type AnnouncementHandler struct {
	announcementRepo *repository.AnnouncementRepository
	log              *logrus.Logger
}

func NewAnnouncementHandler(announcementRepo *repository.AnnouncementRepository, log *logrus.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{announcementRepo: announcementRepo, log: log}
}

// ListActive returns only announcements flagged active.
func (h *AnnouncementHandler) ListActive(c *gin.Context) {
	announcements, err := h.announcementRepo.ListActive()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, announcements)
}

// ListAll returns every announcement, active or not.
func (h *AnnouncementHandler) ListAll(c *gin.Context) {
	announcements, err := h.announcementRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.AnnouncementRequest
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
		priority = "normal"
	}
	announcement := models.Announcement{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Message:   req.Message,
		Date:      time.Now().UTC().Format("2006-01-02"),
		Active:    true,
		Priority:  priority,
		CreatedBy: sessionUser.Username,
	}
	if err := h.announcementRepo.Create(&announcement); err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req struct {
		Title    *string `json:"title"`
		Message  *string `json:"message"`
		Active   *bool   `json:"active"`
		Priority *string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	announcement, err := h.announcementRepo.Update(c.Param("id"), func(a *models.Announcement) {
		if req.Title != nil {
			a.Title = *req.Title
		}
		if req.Message != nil {
			a.Message = *req.Message
		}
		if req.Active != nil {
			a.Active = *req.Active
		}
		if req.Priority != nil {
			a.Priority = *req.Priority
		}
	})
	if err != nil {
		RepoError(c, h.log, err, "Annonce non trouvée")
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementRepo.Delete(c.Param("id")); err != nil {
		RepoError(c, h.log, err, "Annonce non trouvée")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Annonce supprimée"})
}
