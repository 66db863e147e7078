package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"micromon/internal/archive"
	"micromon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListBackups returns all backups, newest first.
func (h *HTTPHandler) ListBackups(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	backups, err := h.repo.ListBackups(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list backups")
		StorageUnavailable(c)
		return
	}
	if backups == nil {
		backups = []entity.DbBackup{}
	}
	c.JSON(http.StatusOK, backups)
}

// CreateBackup records a pending backup and returns immediately; the external
// worker picks it up from there. A manifest describing the request is written
// to the archive target so the worker has the schedule context; manifest
// failures are logged and never fail the schedule.
func (h *HTTPHandler) CreateBackup(c *gin.Context) {
	var req entity.BackupCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ValidationFailed(c, FieldError{Field: "name", Message: "backup name is required"})
		return
	}

	backup := &entity.DbBackup{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      entity.BackupStatusPending,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if err := h.repo.CreateBackup(ctx, backup); err != nil {
		logrus.WithError(err).Error("failed to create backup")
		StorageUnavailable(c)
		return
	}

	if h.archive != nil {
		user := CurrentUser(c)
		requestedBy := ""
		if user != nil {
			requestedBy = user.Username
		}
		if err := archive.WriteManifest(ctx, h.archive, backup, requestedBy); err != nil {
			logrus.WithError(err).WithField("backup_id", backup.ID).Warn("failed to write backup manifest")
		}
	}

	c.JSON(http.StatusCreated, backup)
}

// RetryBackup moves a failed backup back to pending, the only backward
// transition the lifecycle allows.
func (h *HTTPHandler) RetryBackup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	err := h.repo.TransitionBackup(ctx, id, entity.BackupStatusFailed, entity.BackupStatusPending)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "backup not found")
		return
	case errors.Is(err, entity.ErrBackupTransition):
		Conflict(c, "only a failed backup can be retried")
		return
	default:
		logrus.WithError(err).WithField("backup_id", id).Error("failed to retry backup")
		StorageUnavailable(c)
		return
	}

	backup, err := h.repo.GetBackupByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("backup_id", id).Error("failed to reload backup after retry")
		StorageUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, backup)
}
