package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"micromon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultHistoryHours = 24
	// One year. Beyond that the window covers the whole table anyway, and an
	// unbounded value would overflow the duration arithmetic.
	maxHistoryHours = 24 * 365
)

// SystemMetrics returns the latest reading per metric type. A type with no
// rows is reported as null so callers can tell "no data" from a real zero.
func (h *HTTPHandler) SystemMetrics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	var snapshot entity.MetricsSnapshot
	for _, probe := range []struct {
		metricType string
		target     **entity.DbSystemMetric
	}{
		{entity.MetricTypeCPU, &snapshot.CPU},
		{entity.MetricTypeMemory, &snapshot.Memory},
		{entity.MetricTypeDisk, &snapshot.Disk},
	} {
		metric, err := h.repo.LatestMetric(ctx, probe.metricType)
		switch {
		case err == nil:
			*probe.target = metric
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			logrus.WithError(err).WithField("metric_type", probe.metricType).Error("failed to load latest metric")
			StorageUnavailable(c)
			return
		}
	}

	c.JSON(http.StatusOK, snapshot)
}

// MetricsHistory returns readings for one type within a trailing window,
// ascending by timestamp. The window defaults to 24 hours.
func (h *HTTPHandler) MetricsHistory(c *gin.Context) {
	metricType := strings.TrimSpace(c.Query("type"))
	if !entity.ValidMetricType(metricType) {
		ValidationFailed(c, FieldError{Field: "type", Message: "type must be cpu, memory or disk"})
		return
	}

	hours := defaultHistoryHours
	if raw := strings.TrimSpace(c.Query("hours")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ValidationFailed(c, FieldError{Field: "hours", Message: "hours must be a positive integer"})
			return
		}
		if parsed > maxHistoryHours {
			parsed = maxHistoryHours
		}
		hours = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	metrics, err := h.repo.MetricHistory(ctx, metricType, since)
	if err != nil {
		logrus.WithError(err).WithField("metric_type", metricType).Error("failed to load metric history")
		StorageUnavailable(c)
		return
	}
	if metrics == nil {
		metrics = []entity.DbSystemMetric{}
	}
	c.JSON(http.StatusOK, metrics)
}
