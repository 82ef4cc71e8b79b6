package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/repository"
)

// ErrorResponse sends a standardized error response and logs at caller if needed
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RepoError maps a repository failure to 404 for unresolved ids and 500
// (logged) for storage errors. Storage errors are never downgraded to an
// empty result.
func RepoError(c *gin.Context, log *logrus.Logger, err error, notFoundMessage string) {
	if errors.Is(err, repository.ErrNotFound) {
		ErrorResponse(c, http.StatusNotFound, notFoundMessage)
		return
	}
	log.WithError(err).WithField("path", c.FullPath()).Error("storage error")
	ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}
