package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/repository"
)

type PartnerHandler struct {
	partnerRepo *repository.PartnerRepository
	log         *logrus.Logger
}

func NewPartnerHandler(partnerRepo *repository.PartnerRepository, log *logrus.Logger) *PartnerHandler {
	return &PartnerHandler{partnerRepo: partnerRepo, log: log}
}

func (h *PartnerHandler) List(c *gin.Context) {
	partners, err := h.partnerRepo.List()
	if err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusOK, partners)
}

func (h *PartnerHandler) Create(c *gin.Context) {
	var req models.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil || *req.Name == "" || req.Description == nil || *req.Description == "" || req.Image == nil || *req.Image == "" {
		ErrorResponse(c, http.StatusBadRequest, "Nom, description et image requis")
		return
	}

	partner := models.Partner{
		ID:          uuid.New().String(),
		Name:        *req.Name,
		Description: *req.Description,
		Image:       *req.Image,
		CreatedAt:   time.Now().UTC(),
	}
	if req.ExternalLink != nil {
		partner.ExternalLink = *req.ExternalLink
	}
	if err := h.partnerRepo.Create(&partner); err != nil {
		RepoError(c, h.log, err, "")
		return
	}
	c.JSON(http.StatusCreated, partner)
}

func (h *PartnerHandler) Update(c *gin.Context) {
	var req models.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	partner, err := h.partnerRepo.Update(c.Param("id"), func(p *models.Partner) {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.ExternalLink != nil {
			p.ExternalLink = *req.ExternalLink
		}
	})
	if err != nil {
		RepoError(c, h.log, err, "Partenaire non trouvé")
		return
	}
	c.JSON(http.StatusOK, partner)
}

func (h *PartnerHandler) Delete(c *gin.Context) {
	partner, err := h.partnerRepo.Delete(c.Param("id"))
	if err != nil {
		RepoError(c, h.log, err, "Partenaire non trouvé")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Partenaire supprimé", "partner": partner})
}
