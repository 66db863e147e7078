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

// ListAlerts returns all alert rules, newest first.
func (h *HTTPHandler) ListAlerts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	alerts, err := h.repo.ListAlerts(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list alerts")
		StorageUnavailable(c)
		return
	}
	if alerts == nil {
		alerts = []entity.DbAlert{}
	}
	c.JSON(http.StatusOK, alerts)
}

// CreateAlert validates and inserts a new rule. New alerts start enabled and
// active.
func (h *HTTPHandler) CreateAlert(c *gin.Context) {
	var req entity.AlertCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	condition := strings.TrimSpace(req.Condition)
	severity := strings.TrimSpace(req.Severity)

	var fieldErrors []FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "alert name is required"})
	}
	if condition == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "condition", Message: "alert condition is required"})
	}
	if severity == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "severity", Message: "alert severity is required"})
	} else if !entity.ValidAlertSeverity(severity) {
		fieldErrors = append(fieldErrors, FieldError{Field: "severity", Message: "severity must be low, medium or high"})
	}
	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}

	alert := &entity.DbAlert{
		Name:        name,
		Condition:   condition,
		Severity:    severity,
		Description: strings.TrimSpace(req.Description),
		Enabled:     true,
		Status:      entity.AlertStatusActive,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if err := h.repo.CreateAlert(ctx, alert); err != nil {
		logrus.WithError(err).Error("failed to create alert")
		StorageUnavailable(c)
		return
	}

	c.JSON(http.StatusCreated, alert)
}

// UpdateAlert applies a partial update to a rule.
func (h *HTTPHandler) UpdateAlert(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req entity.AlertUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	updates := make(map[string]interface{})
	var fieldErrors []FieldError

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "alert name must not be empty"})
		} else {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
	}
	if req.Condition != nil {
		if strings.TrimSpace(*req.Condition) == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: "condition", Message: "alert condition must not be empty"})
		} else {
			updates["condition"] = strings.TrimSpace(*req.Condition)
		}
	}
	if req.Severity != nil {
		if !entity.ValidAlertSeverity(*req.Severity) {
			fieldErrors = append(fieldErrors, FieldError{Field: "severity", Message: "severity must be low, medium or high"})
		} else {
			updates["severity"] = *req.Severity
		}
	}
	if req.Status != nil {
		if *req.Status != entity.AlertStatusActive && *req.Status != entity.AlertStatusResolved {
			fieldErrors = append(fieldErrors, FieldError{Field: "status", Message: "status must be active or resolved"})
		} else {
			updates["status"] = *req.Status
		}
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}

	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}
	if len(updates) == 0 {
		ValidationFailed(c, FieldError{Field: "body", Message: "no updatable fields supplied"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if err := h.repo.UpdateAlert(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "alert not found")
			return
		}
		logrus.WithError(err).WithField("alert_id", id).Error("failed to update alert")
		StorageUnavailable(c)
		return
	}

	alert, err := h.repo.GetAlertByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("alert_id", id).Error("failed to reload alert after update")
		StorageUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// ToggleAlert flips the enabled flag and nothing else. This is a dedicated
// transition rather than a full update so concurrent edits to other fields
// are untouched.
func (h *HTTPHandler) ToggleAlert(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	alert, err := h.repo.GetAlertByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "alert not found")
			return
		}
		logrus.WithError(err).WithField("alert_id", id).Error("failed to load alert for toggle")
		StorageUnavailable(c)
		return
	}

	if err := h.repo.SetAlertEnabled(ctx, id, !alert.Enabled); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "alert not found")
			return
		}
		logrus.WithError(err).WithField("alert_id", id).Error("failed to toggle alert")
		StorageUnavailable(c)
		return
	}

	alert.Enabled = !alert.Enabled
	c.JSON(http.StatusOK, alert)
}

// DeleteAlert removes a rule.
func (h *HTTPHandler) DeleteAlert(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if err := h.repo.DeleteAlert(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "alert not found")
			return
		}
		logrus.WithError(err).WithField("alert_id", id).Error("failed to delete alert")
		StorageUnavailable(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "alert deleted"})
}
