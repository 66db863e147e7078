package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"micromon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetSettings returns the singleton settings row.
func (h *HTTPHandler) GetSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	settings, err := h.repo.GetSystemSettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Seeding creates the row at startup; an empty table still answers
			// with defaults rather than a 404.
			c.JSON(http.StatusOK, entity.DbSystemSettings{BackupFrequency: entity.BackupFrequencyDaily})
			return
		}
		logrus.WithError(err).Error("failed to load system settings")
		StorageUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings overwrites the singleton row. Both enabled flags are
// mandatory so a partial body cannot silently clear one.
func (h *HTTPHandler) UpdateSettings(c *gin.Context) {
	var req entity.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	var fieldErrors []FieldError
	if req.BackupEnabled == nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "backup_enabled", Message: "backup_enabled is required"})
	}
	if req.NotificationEnabled == nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "notification_enabled", Message: "notification_enabled is required"})
	}
	frequency := strings.TrimSpace(req.BackupFrequency)
	if frequency == "" {
		frequency = entity.BackupFrequencyDaily
	} else if !entity.ValidBackupFrequency(frequency) {
		fieldErrors = append(fieldErrors, FieldError{Field: "backup_frequency", Message: "backup_frequency must be hourly, daily, weekly or monthly"})
	}
	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}

	settings := &entity.DbSystemSettings{
		BackupEnabled:       *req.BackupEnabled,
		NotificationEnabled: *req.NotificationEnabled,
		BackupFrequency:     frequency,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if err := h.repo.SaveSystemSettings(ctx, settings); err != nil {
		logrus.WithError(err).Error("failed to save system settings")
		StorageUnavailable(c)
		return
	}

	c.JSON(http.StatusOK, settings)
}
