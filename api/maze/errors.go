package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(ctx *gin.Context, logger *logrus.Entry, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimensions), errors.Is(err, maze.ErrOutOfBounds):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStoreUnavailable):
		logger.WithError(err).Warn("session store unavailable")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "sessions are temporarily unavailable"})
	default:
		logger.WithError(err).Error("unhandled service error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred"})
	}
}
