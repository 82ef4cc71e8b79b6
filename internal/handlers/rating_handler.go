package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/repository"
)

type RatingHandler struct {
	ratingRepo *repository.RatingRepository
	serverRepo *repository.ServerRepository
	log        *logrus.Logger
}

func NewRatingHandler(ratingRepo *repository.RatingRepository, serverRepo *repository.ServerRepository, log *logrus.Logger) *RatingHandler {
	return &RatingHandler{ratingRepo: ratingRepo, serverRepo: serverRepo, log: log}
}

// List returns every rating.
func (h *RatingHandler) List(c *gin.Context) {
	ratings, err := h.ratingRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// ListByServer returns the ratings for one server.
func (h *RatingHandler) ListByServer(c *gin.Context) {
	ratings, err := h.ratingRepo.ListByServer(c.Param("serverId"))
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// GetUserRating returns one user's rating for a server, or null.
func (h *RatingHandler) GetUserRating(c *gin.Context) {
	rating, err := h.ratingRepo.GetByUserAndServer(c.Param("userId"), c.Param("serverId"))
	if err != nil {
		if err == repository.ErrNotFound {
			c.JSON(http.StatusOK, nil)
			return
		}
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, rating)
}

// Submit upserts the session user's rating and synchronously recomputes
// the server's aggregate. The rating write and the aggregate write are two
// independent cycles, each single-writer on its own collection.
func (h *RatingHandler) Submit(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Données invalides")
		return
	}
	if err := req.Validate(); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Données invalides")
		return
	}

	if _, err := h.serverRepo.Get(req.ServerID); err != nil {
		RepoError(c, h.log, err, "Server not found")
		return
	}

	if _, err := h.ratingRepo.Upsert(sessionUser.ID, req.ServerID, req.Rating); err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	h.recomputeAggregate(req.ServerID)

	c.JSON(http.StatusOK, gin.H{"message": "Note enregistrée"})
}

// Delete removes the session user's own rating and recomputes the
// aggregate.
func (h *RatingHandler) Delete(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	deleted, err := h.ratingRepo.Delete(c.Param("id"), sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "Note non trouvée")
		return
	}
	h.recomputeAggregate(deleted.ServerID)

	c.JSON(http.StatusOK, gin.H{"message": "Note supprimée"})
}

func (h *RatingHandler) recomputeAggregate(serverID string) {
	avg, total, err := h.ratingRepo.AggregateForServer(serverID)
	if err != nil {
		h.log.WithError(err).WithField("serverId", serverID).Error("failed to recompute rating aggregate")
		return
	}
	if _, err := h.serverRepo.SetRatingStats(serverID, avg, total); err != nil {
		h.log.WithError(err).WithField("serverId", serverID).Error("failed to store rating aggregate")
	}
}
