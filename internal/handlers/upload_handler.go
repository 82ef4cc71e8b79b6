package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

const maxUploadSize = 5 << 20

type UploadHandler struct {
	uploadDir string
	log       *logrus.Logger
}

func NewUploadHandler(uploadDir string, log *logrus.Logger) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir, log: log}
}

// Upload stores a server icon or banner image and returns its public path.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Aucun fichier reçu")
		return
	}
	if file.Size > maxUploadSize {
		ErrorResponse(c, http.StatusBadRequest, "Fichier trop volumineux (5 Mo max)")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		ErrorResponse(c, http.StatusBadRequest, "Format d'image non supporté")
		return
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		h.log.WithError(err).Error("failed to save uploaded file")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": "/uploads/" + name})
}
