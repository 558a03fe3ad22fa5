package handlers

import (
	"errors"
	"net/http"

	"github.com/careerpilot/autofill-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses with a
// structured reason, so the extension can show a precise message instead of
// a generic failure. Unknown errors are treated as transient storage
// trouble: 503, client retries with backoff.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": "validation_error"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "reason": "not_found"})
	case errors.Is(err, services.ErrDuplicateJob):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "duplicate_job"})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error(), "reason": "rate_limited"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "reason": "invalid_transition"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, retry later", "reason": "storage_unavailable"})
	}
}

// HealthCheck is the unauthenticated liveness probe.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
