package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Health is the unauthenticated liveness check.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// HealthDetailed returns the dashboard counters over a trailing 24h window.
func (h *HTTPHandler) HealthDetailed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	since := time.Now().UTC().Add(-24 * time.Hour)
	summary, err := h.repo.HealthSummary(ctx, since)
	if err != nil {
		logrus.WithError(err).Error("failed to load health summary")
		StorageUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, summary)
}
