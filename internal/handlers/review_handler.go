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

type ReviewHandler struct {
	reviewRepo *repository.ReviewRepository
	serverRepo *repository.ServerRepository
	log        *logrus.Logger
}

func NewReviewHandler(reviewRepo *repository.ReviewRepository, serverRepo *repository.ServerRepository, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo, serverRepo: serverRepo, log: log}
}

// Create adds a review for an existing server.
func (h *ReviewHandler) Create(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.serverRepo.Get(req.ServerID); err != nil {
		RepoError(c, h.log, err, "Serveur non trouvé")
		return
	}

	review := models.Review{
		ID:        uuid.New().String(),
		ServerID:  req.ServerID,
		UserID:    sessionUser.ID,
		Username:  sessionUser.Username,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.reviewRepo.Create(&review); err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// List returns every review.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListByServer returns the reviews for one server.
func (h *ReviewHandler) ListByServer(c *gin.Context) {
	reviews, err := h.reviewRepo.ListByServer(c.Param("serverId"))
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Delete removes a review: its author or admin+.
func (h *ReviewHandler) Delete(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	review, err := h.reviewRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Avis non trouvé")
		return
	}
	if review.UserID != sessionUser.ID && !sessionUser.Role.AtLeast(models.RoleAdmin) {
		ErrorResponse(c, http.StatusForbidden, "Non autorisé")
		return
	}

	if err := h.reviewRepo.Delete(review.ID); err != nil {
		RepoError(c, h.log, err, "Avis non trouvé")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Avis supprimé"})
}
