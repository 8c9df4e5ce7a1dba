// Package handlers adapts the boutique services to gin.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
)

// SessionKey is the gin context key holding the request's models.Session.
const SessionKey = "session"

const genericFailure = "something went wrong, please try again"

// SessionFrom returns the session the auth middleware attached to c.
func SessionFrom(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}

// confirmed reads the confirmation gate from the request body flag or the
// confirm query parameter.
func confirmed(c *gin.Context, body bool) bool {
	if body {
		return true
	}
	v, err := strconv.ParseBool(c.Query("confirm"))
	return err == nil && v
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var confirm *models.ConfirmationError
	switch {
	case errors.As(err, &confirm):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "confirmation required", "prompt": confirm.Prompt})
	case errors.Is(err, models.ErrMissingDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrMissingDateRange.Error()})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidCredentials.Error()})
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrUnauthenticated.Error()})
	case errors.Is(err, models.ErrStore):
		logger.Error("record store failure", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": genericFailure})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericFailure})
	}
}

func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
