package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/repository"
)

type CategoryHandler struct {
	categoryRepo *repository.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryHandler(categoryRepo *repository.CategoryRepository, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo, log: log}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryRepo.Get(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Catégorie non trouvée")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		ErrorResponse(c, http.StatusBadRequest, "Nom requis")
		return
	}

	icon := req.Icon
	if icon == "" {
		icon = "🎮"
	}
	category := models.Category{
		ID:          slugify(req.Name),
		Name:        req.Name,
		Description: req.Description,
		Icon:        icon,
	}
	if err := h.categoryRepo.Create(&category); err != nil {
		if err == repository.ErrDuplicate {
			ErrorResponse(c, http.StatusBadRequest, "Cette catégorie existe déjà")
			return
		}
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categoryRepo.Update(c.Param("id"), func(cat *models.Category) {
		if req.Name != "" {
			cat.Name = req.Name
		}
		if req.Description != "" {
			cat.Description = req.Description
		}
		if req.Icon != "" {
			cat.Icon = req.Icon
		}
	})
	if err != nil {
		RepoError(c, h.log, err, "Catégorie non trouvée")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryRepo.Delete(c.Param("id")); err != nil {
		RepoError(c, h.log, err, "Catégorie non trouvée")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
