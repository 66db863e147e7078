package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"micromon/internal/auth"
	"micromon/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Login verifies credentials and mints a session token. An unknown username
// and a wrong password produce byte-identical responses so the endpoint cannot
// be used to enumerate accounts.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	username := strings.TrimSpace(req.Username)
	password := req.Password
	if username == "" || password == "" {
		var fieldErrors []FieldError
		if username == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: "username", Message: "username is required"})
		}
		if password == "" {
			fieldErrors = append(fieldErrors, FieldError{Field: "password", Message: "password is required"})
		}
		ValidationFailed(c, fieldErrors...)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), repoTimeout)
	defer cancel()

	user, err := h.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rejectCredentials(c, username)
			return
		}
		logrus.WithError(err).Error("failed to load user for login")
		StorageUnavailable(c)
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		rejectCredentials(c, username)
		return
	}

	if user.Status != entity.UserStatusActive {
		Forbidden(c, "account is disabled")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		StorageUnavailable(c)
		return
	}

	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      makeUserSummary(user),
	})
}

func rejectCredentials(c *gin.Context, username string) {
	logrus.WithField("username", username).Warn("login attempt failed")
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
}

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
