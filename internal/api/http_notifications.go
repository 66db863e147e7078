package api

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"micromon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetNotifications returns the caller's delivery preferences, or zero-valued
// defaults when nothing has been saved yet.
func (h *HTTPHandler) GetNotifications(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	settings, err := h.repo.GetNotificationSettings(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, entity.DbNotificationSettings{UserID: user.ID})
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load notification settings")
		StorageUnavailable(c)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateNotifications upserts the caller's preferences. Each channel is
// validated independently: an enabled channel must carry a non-empty target,
// and every violation is named in the field error list.
func (h *HTTPHandler) UpdateNotifications(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}

	var req entity.NotificationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	var fieldErrors []FieldError
	if req.EmailEnabled == nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "email_enabled", Message: "email_enabled is required"})
	}
	if req.SlackEnabled == nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "slack_enabled", Message: "slack_enabled is required"})
	}
	if req.WebhookEnabled == nil {
		fieldErrors = append(fieldErrors, FieldError{Field: "webhook_enabled", Message: "webhook_enabled is required"})
	}
	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}

	email := strings.TrimSpace(req.Email)
	slackWebhook := strings.TrimSpace(req.SlackWebhook)
	webhookURL := strings.TrimSpace(req.WebhookURL)

	if *req.EmailEnabled {
		if email == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "email is required when email_enabled is true"})
		} else if _, err := mail.ParseAddress(email); err != nil {
			fieldErrors = append(fieldErrors, FieldError{Field: "email", Message: "email is not a valid address"})
		}
	}
	if *req.SlackEnabled && slackWebhook == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "slack_webhook", Message: "slack_webhook is required when slack_enabled is true"})
	}
	if *req.WebhookEnabled && webhookURL == "" {
		fieldErrors = append(fieldErrors, FieldError{Field: "webhook_url", Message: "webhook_url is required when webhook_enabled is true"})
	}
	if len(fieldErrors) > 0 {
		ValidationFailed(c, fieldErrors...)
		return
	}

	settings := &entity.DbNotificationSettings{
		UserID:         user.ID,
		EmailEnabled:   *req.EmailEnabled,
		SlackEnabled:   *req.SlackEnabled,
		WebhookEnabled: *req.WebhookEnabled,
		Email:          email,
		SlackWebhook:   slackWebhook,
		WebhookURL:     webhookURL,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	if err := h.repo.SaveNotificationSettings(ctx, settings); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to save notification settings")
		StorageUnavailable(c)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// TestNotifications sends a test message to each of the caller's enabled
// channels and reports per-channel outcomes.
func (h *HTTPHandler) TestNotifications(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		abortUnauthorized(c)
		return
	}
	if h.notifier == nil {
		ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeStorageUnavailable, "notification delivery not configured")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	settings, err := h.repo.GetNotificationSettings(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ValidationFailed(c, FieldError{Field: "body", Message: "no notification settings saved"})
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load notification settings for test")
		StorageUnavailable(c)
		return
	}

	results := h.notifier.SendTest(settings)
	if len(results) == 0 {
		ValidationFailed(c, FieldError{Field: "body", Message: "no channels are enabled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
