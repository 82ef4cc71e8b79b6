package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/repository"
)

type FavoriteHandler struct {
	favoriteRepo *repository.FavoriteRepository
	serverRepo   *repository.ServerRepository
	log          *logrus.Logger
}

func NewFavoriteHandler(favoriteRepo *repository.FavoriteRepository, serverRepo *repository.ServerRepository, log *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepo: favoriteRepo, serverRepo: serverRepo, log: log}
}

// List returns the session user's favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	favorites, err := h.favoriteRepo.ListByUser(sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req struct {
		ServerID string `json:"serverId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ServerID == "" {
		ErrorResponse(c, http.StatusBadRequest, "ID du serveur requis")
		return
	}

	if _, err := h.serverRepo.Get(req.ServerID); err != nil {
		RepoError(c, h.log, err, "Serveur non trouvé")
		return
	}

	favorite, err := h.favoriteRepo.Add(sessionUser.ID, req.ServerID)
	if err != nil {
		if err == repository.ErrDuplicate {
			ErrorResponse(c, http.StatusBadRequest, "Déjà dans les favoris")
			return
		}
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	if err := h.favoriteRepo.Remove(sessionUser.ID, c.Param("serverId")); err != nil {
		RepoError(c, h.log, err, "Favori non trouvé")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Check reports whether a server is in the session user's favorites.
func (h *FavoriteHandler) Check(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	favorited, err := h.favoriteRepo.Has(sessionUser.ID, c.Param("serverId"))
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}
